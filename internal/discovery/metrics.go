package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// strategyURLs tracks how many candidate URLs each strategy contributed.
	strategyURLs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "siteforge_discovery_strategy_urls_total",
		Help: "Candidate URLs contributed per discovery strategy.",
	}, []string{"strategy"})
	// strategyFailures tracks strategies that degraded to an empty contribution.
	strategyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "siteforge_discovery_strategy_failures_total",
		Help: "Discovery strategies that failed and contributed nothing.",
	}, []string{"strategy"})
	// fetchErrors tracks individual failed fetches during discovery and extraction.
	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "siteforge_discovery_fetch_errors_total",
		Help: "The total number of failed HTTP fetches during discovery.",
	})
	// pagesExtracted tracks successful content extractions.
	pagesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "siteforge_discovery_pages_extracted_total",
		Help: "The total number of pages whose content was extracted.",
	})
)
