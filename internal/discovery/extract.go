package discovery

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// mainSelectors locate the main content container, in priority order.
var mainSelectors = []string{
	"main", "article", ".content", "#content",
	".main-content", ".page-content",
}

// bodyTextCap bounds the concatenated main-content text.
const bodyTextCap = 3000

// minParagraphLen excludes very short paragraphs as noise.
const minParagraphLen = 50

// ExtractContent fetches a single page and extracts typed content sections.
// It is fail-soft: fetch or parse failures return a well-formed PageContent
// with empty fields, never an error.
func (e *Engine) ExtractContent(ctx context.Context, url string) PageContent {
	content := PageContent{URL: url}

	resp, err := e.fetch.Get(ctx, url)
	if err != nil {
		fetchErrors.Inc()
		e.logger.Warn("content extraction fetch failed", zap.String("url", url), zap.Error(err))
		return content
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		e.logger.Warn("content extraction parse failed", zap.String("url", url), zap.Error(err))
		return content
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	content.Description, _ = doc.Find(`meta[name="description"]`).Attr("content")

	// Strip non-content markup before walking the tree.
	doc.Find("script, style, noscript").Remove()

	main := findMainContainer(doc)
	if main == nil {
		return content
	}

	content.Sections = e.collectSections(main)
	content.BodyText = capRunes(normalizeSpace(main.Text()), bodyTextCap)
	pagesExtracted.Inc()
	return content
}

func findMainContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// collectSections walks up to MaxSections heading/paragraph/list children
// into typed sections. Long paragraphs are captured whole; only the
// aggregate body text is capped.
func (e *Engine) collectSections(main *goquery.Selection) []Section {
	var sections []Section
	main.Find("h1, h2, h3, p, ul, ol").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= e.cfg.MaxSections {
			return false
		}
		switch name := goquery.NodeName(sel); name {
		case "h1", "h2", "h3":
			if text := strings.TrimSpace(sel.Text()); text != "" {
				sections = append(sections, Section{Type: "heading", Level: name, Text: text})
			}
		case "p":
			text := strings.TrimSpace(sel.Text())
			if len(text) >= minParagraphLen {
				sections = append(sections, Section{Type: "paragraph", Text: text})
			}
		case "ul", "ol":
			var items []string
			sel.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					items = append(items, text)
				}
			})
			if len(items) > 0 {
				sections = append(sections, Section{Type: "list", Items: items})
			}
		}
		return true
	})
	return sections
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func capRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
