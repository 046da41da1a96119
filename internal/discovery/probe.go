package discovery

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// commonPaths are conventional page locations probed with HEAD requests.
var commonPaths = []string{
	"/about", "/about-us", "/about-team",
	"/services", "/our-services", "/what-we-do",
	"/practices", "/practice-areas", "/areas-of-practice",
	"/team", "/our-team", "/attorneys", "/lawyers", "/staff",
	"/contact", "/contact-us", "/get-in-touch",
	"/testimonials", "/reviews", "/case-studies",
	"/faq", "/faqs", "/frequently-asked-questions",
}

// probeCommonPaths issues lightweight existence checks against conventional
// paths. Each path that resolves successfully contributes its URL; probe
// failures contribute nothing.
func (e *Engine) probeCommonPaths(ctx context.Context, base string) []string {
	urls := newOrderedSet()
	for _, path := range commonPaths {
		probeURL := base + path
		status, err := e.fetch.Head(ctx, probeURL)
		if err != nil {
			fetchErrors.Inc()
			e.logger.Debug("path probe failed", zap.String("url", probeURL), zap.Error(err))
			continue
		}
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			urls.add(probeURL)
		}
	}
	return urls.values()
}
