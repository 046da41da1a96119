package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// wpEndpoints are the REST endpoints queried once WordPress is detected.
// The first endpoint returning parseable data wins.
var wpEndpoints = []string{
	"/wp-json/wp/v2/pages",
	"/wp-json/wp/v2/posts?categories_exclude=1",
	"/?rest_route=/wp/v2/pages",
}

const wpMaxLinks = 30

// cmsURLs queries the WordPress REST API when the homepage shows any of the
// three WordPress signals, returning up to 30 page links.
func (e *Engine) cmsURLs(ctx context.Context, base string) []string {
	resp, err := e.fetch.Get(ctx, base)
	if err != nil {
		fetchErrors.Inc()
		e.logger.Debug("homepage fetch failed for CMS detection", zap.Error(err))
		return nil
	}
	if !isWordPress(resp.Body) {
		return nil
	}

	for _, endpoint := range wpEndpoints {
		resp, err := e.fetch.Get(ctx, base+endpoint)
		if err != nil {
			fetchErrors.Inc()
			continue
		}
		var pages []struct {
			Link string `json:"link"`
		}
		if err := json.Unmarshal(resp.Body, &pages); err != nil {
			continue
		}
		urls := newOrderedSet()
		for i, page := range pages {
			if i >= wpMaxLinks {
				break
			}
			urls.add(page.Link)
		}
		if len(urls.values()) > 0 {
			return urls.values()
		}
	}
	return nil
}

// isWordPress checks homepage markup for three independent WordPress
// signals: the generator meta tag, the REST discovery link relation, and
// known asset-path substrings.
func isWordPress(body []byte) bool {
	if bytes.Contains(body, []byte("wp-content")) || bytes.Contains(body, []byte("wp-includes")) {
		return true
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false
	}
	generator, _ := doc.Find(`meta[name="generator"]`).Attr("content")
	if strings.Contains(strings.ToLower(generator), "wordpress") {
		return true
	}
	return doc.Find(`link[rel="https://api.w.org/"]`).Length() > 0
}
