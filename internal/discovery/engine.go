package discovery

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Config bounds the discovery engine.
type Config struct {
	MaxPerCategory  int
	MaxServiceLinks int
	MaxSections     int
}

// Engine orchestrates the discovery strategies against a Fetcher.
type Engine struct {
	fetch  Fetcher
	cfg    Config
	logger *zap.Logger
}

// NewEngine builds an Engine.
func NewEngine(fetch Fetcher, cfg Config, logger *zap.Logger) *Engine {
	if cfg.MaxPerCategory <= 0 {
		cfg.MaxPerCategory = 20
	}
	if cfg.MaxServiceLinks <= 0 {
		cfg.MaxServiceLinks = 30
	}
	if cfg.MaxSections <= 0 {
		cfg.MaxSections = 50
	}
	return &Engine{fetch: fetch, cfg: cfg, logger: logger}
}

// Discover produces a deduplicated, categorized set of same-domain page URLs
// for the site rooted at rawURL. Every strategy is fail-soft: a failing
// strategy contributes nothing and never aborts discovery. The only hard
// error is an unusable root URL.
func (e *Engine) Discover(ctx context.Context, rawURL string) (CategorizedURLSet, error) {
	base, err := baseURL(rawURL)
	if err != nil {
		return nil, err
	}

	strategies := []struct {
		name string
		run  func(context.Context, string) []string
	}{
		{"sitemap", e.sitemapURLs},
		{"cms_api", e.cmsURLs},
		{"known_paths", e.probeCommonPaths},
		{"navigation", e.navigationURLs},
	}

	// The first four strategies only read the root URL, so they run
	// concurrently and synchronize at the merge.
	results := make([][]string, len(strategies))
	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, name string, run func(context.Context, string) []string) {
			defer wg.Done()
			urls := run(ctx, base)
			results[i] = urls
			if len(urls) == 0 {
				strategyFailures.WithLabelValues(name).Inc()
			} else {
				strategyURLs.WithLabelValues(name).Add(float64(len(urls)))
			}
			e.logger.Info("discovery strategy finished",
				zap.String("strategy", name),
				zap.Int("urls", len(urls)),
			)
		}(i, s.name, s.run)
	}
	wg.Wait()

	// Merge in fixed strategy order so the pre-truncation order is stable.
	merged := newOrderedSet()
	for _, urls := range results {
		merged.addAll(urls)
	}

	// The secondary service-page crawl consumes the merged set, so it runs
	// after the merge.
	serviceLinks := e.serviceListingLinks(ctx, base, merged.values())
	if len(serviceLinks) > 0 {
		strategyURLs.WithLabelValues("service_crawl").Add(float64(len(serviceLinks)))
	}
	merged.addAll(serviceLinks)

	set := make(CategorizedURLSet, len(Categories))
	for _, u := range merged.values() {
		cat, ok := Categorize(u)
		if !ok {
			continue
		}
		set[cat] = append(set[cat], u)
	}
	set.truncate(e.cfg.MaxPerCategory)

	e.logger.Info("discovery complete",
		zap.String("root", base),
		zap.Int("candidates", len(merged.values())),
		zap.Int("kept", set.Total()),
	)
	return set, nil
}
