package discovery

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// navSelectors locate navigation-like link containers on the homepage.
var navSelectors = []string{
	"nav a",
	".nav a", ".navbar a", ".navigation a",
	".menu a", ".main-menu a",
	"header a",
	`[role="navigation"] a`,
}

// navigationURLs fetches the homepage and extracts all same-domain links
// found under the navigation selectors.
func (e *Engine) navigationURLs(ctx context.Context, base string) []string {
	resp, err := e.fetch.Get(ctx, base)
	if err != nil {
		fetchErrors.Inc()
		e.logger.Debug("homepage fetch failed for navigation", zap.Error(err))
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		e.logger.Debug("homepage unparseable", zap.Error(err))
		return nil
	}

	urls := newOrderedSet()
	for _, selector := range navSelectors {
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
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
