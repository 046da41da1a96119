// Package discovery implements the multi-strategy content-discovery engine.
// It aggregates candidate page URLs from sitemaps, the WordPress REST API,
// conventional path probing, navigation parsing, and secondary service-page
// crawling, then deduplicates and categorizes the result.
package discovery

import (
	"context"

	"github.com/siteforge/siteforge/internal/fetcher"
)

// Category partitions discovered URLs by content type.
type Category string

// The closed set of URL categories.
const (
	CategoryServices Category = "services"
	CategoryAbout    Category = "about"
	CategoryContact  Category = "contact"
	CategoryOther    Category = "other"
)

// Categories lists every category in a fixed order.
var Categories = []Category{CategoryServices, CategoryAbout, CategoryContact, CategoryOther}

// CategorizedURLSet is the deduplicated discovery output, partitioned by category.
type CategorizedURLSet map[Category][]string

// Total returns the number of URLs across all categories.
func (s CategorizedURLSet) Total() int {
	n := 0
	for _, urls := range s {
		n += len(urls)
	}
	return n
}

// Section is one typed content block extracted from a page.
type Section struct {
	Type  string   `json:"type"`
	Level string   `json:"level,omitempty"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// PageContent is the structured content extracted from a single page.
type PageContent struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
	BodyText    string    `json:"main_content"`
}

// Fetcher performs the outbound retrievals the engine depends on.
type Fetcher interface {
	Get(ctx context.Context, url string) (fetcher.Response, error)
	Head(ctx context.Context, url string) (int, error)
}
