package discovery

import (
	"bytes"
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// serviceListingPatterns identify URLs that look like service or
// practice-area listing pages worth a secondary crawl.
var serviceListingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/practices?/`),
	regexp.MustCompile(`(?i)/services?/?$`),
	regexp.MustCompile(`(?i)/services?/`),
	regexp.MustCompile(`(?i)/areas?-of-practice/`),
	regexp.MustCompile(`(?i)/what-we-do/`),
	regexp.MustCompile(`(?i)/expertise/`),
	regexp.MustCompile(`(?i)/specialt(y|ies)/`),
}

// serviceCardSelectors locate individual service links on a listing page.
// Headings are included because service titles are often linked.
var serviceCardSelectors = []string{
	".service-item a", ".practice-area a",
	".service-card a", ".practice-card a",
	"article a", ".services-list a",
	"h2 a", "h3 a",
}

// serviceListingLinks treats every gathered URL matching a service pattern
// as a listing page and extracts its individual service-page candidates.
func (e *Engine) serviceListingLinks(ctx context.Context, base string, gathered []string) []string {
	urls := newOrderedSet()
	for _, candidate := range gathered {
		if !matchesServiceListing(candidate) {
			continue
		}
		urls.addAll(e.extractServiceLinks(ctx, base, candidate))
	}
	return urls.values()
}

func matchesServiceListing(url string) bool {
	for _, p := range serviceListingPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

// extractServiceLinks fetches one listing page and pulls same-domain links
// from list/card/heading selectors, capped at MaxServiceLinks.
func (e *Engine) extractServiceLinks(ctx context.Context, base, listingURL string) []string {
	resp, err := e.fetch.Get(ctx, listingURL)
	if err != nil {
		fetchErrors.Inc()
		e.logger.Debug("service listing fetch failed", zap.String("url", listingURL), zap.Error(err))
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		e.logger.Debug("service listing unparseable", zap.String("url", listingURL), zap.Error(err))
		return nil
	}

	urls := newOrderedSet()
	for _, selector := range serviceCardSelectors {
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
			if len(urls.values()) >= e.cfg.MaxServiceLinks {
				return
			}
			href, ok := link.Attr("href")
			if !ok {
				return
			}
			if abs, same := resolveSameDomain(base, href); same {
				urls.add(abs)
			}
		})
	}
	return urls.values()
}
