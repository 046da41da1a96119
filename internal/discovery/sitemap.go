package discovery

import (
	"context"
	"encoding/xml"

	"go.uber.org/zap"
)

// sitemapLocations are the well-known paths probed in order. The first one
// that parses as valid sitemap XML wins.
var sitemapLocations = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/wp-sitemap.xml",
	"/sitemap.xml.gz",
}

type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapEntry `xml:"url"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// sitemapURLs probes the well-known sitemap locations and returns the leaf
// URLs of the first location that parses. A sitemap index is followed one
// level deep; nested indexes are not descended into.
func (e *Engine) sitemapURLs(ctx context.Context, base string) []string {
	for _, location := range sitemapLocations {
		resp, err := e.fetch.Get(ctx, base+location)
		if err != nil {
			fetchErrors.Inc()
			e.logger.Debug("sitemap not found", zap.String("url", base+location), zap.Error(err))
			continue
		}

		var doc sitemapDoc
		if err := xml.Unmarshal(resp.Body, &doc); err != nil {
			e.logger.Debug("sitemap unparseable", zap.String("url", base+location), zap.Error(err))
			continue
		}

		urls := newOrderedSet()
		if doc.XMLName.Local == "sitemapindex" {
			for _, child := range doc.Sitemaps {
				urls.addAll(e.leafSitemapURLs(ctx, child.Loc))
			}
		} else {
			for _, entry := range doc.URLs {
				urls.add(entry.Loc)
			}
		}

		if len(urls.values()) > 0 {
			return urls.values()
		}
	}
	return nil
}

// leafSitemapURLs fetches one child sitemap and returns its <loc> entries.
func (e *Engine) leafSitemapURLs(ctx context.Context, sitemapURL string) []string {
	if sitemapURL == "" {
		return nil
	}
	resp, err := e.fetch.Get(ctx, sitemapURL)
	if err != nil {
		fetchErrors.Inc()
		e.logger.Debug("child sitemap fetch failed", zap.String("url", sitemapURL), zap.Error(err))
		return nil
	}
	var doc sitemapDoc
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		e.logger.Debug("child sitemap unparseable", zap.String("url", sitemapURL), zap.Error(err))
		return nil
	}
	var urls []string
	for _, entry := range doc.URLs {
		if entry.Loc != "" {
			urls = append(urls, entry.Loc)
		}
	}
	return urls
}
