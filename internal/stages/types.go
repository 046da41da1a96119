// Package stages implements the concrete pipeline stages and their
// checkpoint validators and summarizers.
package stages

import (
	"github.com/siteforge/siteforge/internal/analyzer"
	"github.com/siteforge/siteforge/internal/discovery"
)

// Stage name constants, in execution order.
const (
	StageDiscovery            = "discovery"
	StageArchitecturePlanning = "architecture_planning"
	StageContentStrategy      = "content_strategy"
	StageContentGeneration    = "content_generation"
	StageSiteEmission         = "site_emission"
)

// Service is one offering found during discovery, tagged with where it
// was found.
type Service struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
}

// ContentDepth summarizes how much substance the discovered pages carry.
type ContentDepth struct {
	TotalPages        int      `json:"total_pages"`
	TotalSections     int      `json:"total_sections"`
	AverageBodyLength int      `json:"average_body_length"`
	ThinPages         []string `json:"thin_pages,omitempty"`
	HasTestimonials   bool     `json:"has_testimonials"`
	HasFAQ            bool     `json:"has_faq"`
}

// ContentPatterns flags site-wide content features.
type ContentPatterns struct {
	HasBlog         bool   `json:"has_blog"`
	HasCaseStudies  bool   `json:"has_case_studies"`
	HasPricing      bool   `json:"has_pricing"`
	HasPortfolio    bool   `json:"has_portfolio"`
	HasTeamProfiles bool   `json:"has_team_profiles"`
	ContentStyle    string `json:"content_style"`
}

// DiscoveryOutput is the discovery stage's payload schema.
type DiscoveryOutput struct {
	URL            string                  `json:"url"`
	BusinessType   string                  `json:"business_type"`
	BusinessInfo   analyzer.BusinessInfo   `json:"business_info"`
	Contact        analyzer.Contact        `json:"contact_info"`
	Navigation     []analyzer.NavItem      `json:"navigation"`
	Team           []analyzer.TeamMember   `json:"team,omitempty"`
	SEO            analyzer.SEOData        `json:"seo_data"`
	Social         map[string]string       `json:"social_media,omitempty"`
	DiscoveredURLs map[string][]string     `json:"discovered_urls"`
	Pages          []discovery.PageContent `json:"pages"`
	Services       []Service               `json:"services"`
	Taxonomy       string                  `json:"service_taxonomy"`
	ContentDepth   ContentDepth            `json:"content_analysis"`
	Patterns       ContentPatterns         `json:"content_patterns"`
}

// PageNode is one node of the planned site tree.
type PageNode struct {
	Title    string      `json:"title"`
	Path     string      `json:"path"`
	Template string      `json:"template"`
	Children []*PageNode `json:"children,omitempty"`
}

// PlanningOutput is the architecture planning stage's payload schema.
type PlanningOutput struct {
	BusinessType string              `json:"business_type"`
	Structure    *PageNode           `json:"site_structure"`
	Navigation   []string            `json:"navigation"`
	URLPatterns  map[string]string   `json:"url_patterns"`
	Templates    map[string]string   `json:"page_templates"`
	Breadcrumbs  map[string][]string `json:"breadcrumbs"`
	KeywordMap   map[string][]string `json:"keyword_mapping"`
	PageCount    int                 `json:"page_count"`
}

// Outline is the planned content for one page.
type Outline struct {
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
	Tone     string   `json:"tone"`
	Keywords []string `json:"keywords,omitempty"`
}

// StrategyOutput is the content strategy stage's payload schema.
type StrategyOutput struct {
	Outlines   map[string]Outline  `json:"outlines"`
	Tone       string              `json:"tone"`
	KeywordMap map[string][]string `json:"keyword_mapping"`
}

// ContentBlock is one generated section of a page.
type ContentBlock struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// GeneratedPage is one page of generated content.
type GeneratedPage struct {
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}

// GenerationOutput is the content generation stage's payload schema.
type GenerationOutput struct {
	Pages     map[string]GeneratedPage `json:"pages"`
	PageCount int                      `json:"page_count"`
}

// EmissionOutput is the site emission stage's payload schema.
type EmissionOutput struct {
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
	PageCount int      `json:"page_count"`
}
