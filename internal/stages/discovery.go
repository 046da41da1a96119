package stages

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/analyzer"
	"github.com/siteforge/siteforge/internal/detector"
	"github.com/siteforge/siteforge/internal/discovery"
	"github.com/siteforge/siteforge/internal/pipeline"
)

// Discovery crawls the site, analyzes the homepage, classifies the
// business, and assembles the discovery output consumed by every later
// stage.
type Discovery struct {
	engine   *discovery.Engine
	analyzer *analyzer.Analyzer
	detector *detector.Detector
	writer   *artifactWriter
	logger   *zap.Logger
}

// NewDiscovery wires the discovery stage. outputDir is the project
// directory; artifacts land under its discovery/ subdirectory.
func NewDiscovery(engine *discovery.Engine, az *analyzer.Analyzer, det *detector.Detector, outputDir string, logger *zap.Logger) *Discovery {
	return &Discovery{
		engine:   engine,
		analyzer: az,
		detector: det,
		writer:   newArtifactWriter(outputDir, logger),
		logger:   logger,
	}
}

func (s *Discovery) Name() string { return StageDiscovery }

// Run expects input["url"] and returns the encoded DiscoveryOutput.
func (s *Discovery) Run(ctx context.Context, input pipeline.Payload) (pipeline.Payload, error) {
	siteURL, _ := input["url"].(string)
	if siteURL == "" {
		return nil, fmt.Errorf("discovery needs a site url in its input")
	}

	urls, err := s.engine.Discover(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	analysis := s.analyzer.Analyze(ctx, siteURL)

	var pages []discovery.PageContent
	for _, cat := range discovery.Categories {
		for _, u := range urls[cat] {
			pages = append(pages, s.engine.ExtractContent(ctx, u))
		}
	}

	businessType := s.detector.Detect(detectionText(analysis, pages)...)
	out := DiscoveryOutput{
		URL:            siteURL,
		BusinessType:   businessType,
		BusinessInfo:   analysis.BusinessInfo,
		Contact:        analysis.Contact,
		Navigation:     analysis.Navigation,
		Team:           analysis.Team,
		SEO:            analysis.SEO,
		Social:         analysis.Social,
		DiscoveredURLs: categorizedMap(urls),
		Pages:          pages,
		Services:       mergeServices(analysis, urls[discovery.CategoryServices]),
		Taxonomy:       s.detector.ProfileFor(businessType).Taxonomy,
		ContentDepth:   analyzeContentDepth(pages),
		Patterns:       detectContentPatterns(analysis, pages),
	}

	s.logger.Info("discovery complete",
		zap.String("url", siteURL),
		zap.String("business_type", out.BusinessType),
		zap.Int("urls", urls.Total()),
		zap.Int("services", len(out.Services)))

	s.writer.writeJSON("discovery", "discovery_output.json", out)
	s.writer.writeText("discovery", "discovery_report.md", discoveryReport(out))
	return pipeline.Encode(out)
}

func categorizedMap(urls discovery.CategorizedURLSet) map[string][]string {
	out := make(map[string][]string, len(urls))
	for cat, list := range urls {
		out[string(cat)] = list
	}
	return out
}

// detectionText gathers the text fragments the business type is scored
// against.
func detectionText(a analyzer.Analysis, pages []discovery.PageContent) []string {
	fragments := []string{
		a.BusinessInfo.Name,
		a.BusinessInfo.Tagline,
		a.BusinessInfo.AboutSummary,
		a.SEO.Title,
		a.SEO.Description,
		a.SEO.Keywords,
	}
	for _, svc := range a.Services {
		fragments = append(fragments, svc.Title, svc.Description)
	}
	for _, page := range pages {
		fragments = append(fragments, page.Title, page.BodyText)
	}
	return fragments
}

// mergeServices combines homepage service cards, crawled service URLs,
// and service-looking navigation labels into one deduplicated list.
// Earlier sources win on name collisions.
func mergeServices(a analyzer.Analysis, serviceURLs []string) []Service {
	var merged []Service
	seen := map[string]bool{}
	add := func(svc Service) {
		key := strings.ToLower(strings.TrimSpace(svc.Name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		merged = append(merged, svc)
	}

	for _, card := range a.Services {
		add(Service{Name: card.Title, Source: "homepage", Description: card.Description})
	}
	for _, u := range serviceURLs {
		add(Service{Name: serviceNameFromURL(u), URL: u, Source: "crawl"})
	}
	for _, item := range a.Navigation {
		if cat, ok := discovery.Categorize(item.RelativeURL); ok && cat == discovery.CategoryServices {
			add(Service{Name: item.Label, URL: item.URL, Source: "navigation"})
		}
	}
	return merged
}

var listingSegments = map[string]bool{
	"services": true, "service": true, "practices": true, "practice-areas": true,
	"areas-of-practice": true, "what-we-do": true, "expertise": true,
}

// serviceNameFromURL turns the last path segment into a display name.
// A bare listing URL like /services yields "Services".
func serviceNameFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return ""
	}
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	words := strings.FieldsFunc(last, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func analyzeContentDepth(pages []discovery.PageContent) ContentDepth {
	depth := ContentDepth{TotalPages: len(pages)}
	if len(pages) == 0 {
		return depth
	}

	totalLen := 0
	for _, page := range pages {
		depth.TotalSections += len(page.Sections)
		body := len([]rune(page.BodyText))
		totalLen += body
		if body < 200 {
			depth.ThinPages = append(depth.ThinPages, page.URL)
		}
		lower := strings.ToLower(page.BodyText)
		if strings.Contains(lower, "testimonial") {
			depth.HasTestimonials = true
		}
		if strings.Contains(lower, "faq") || strings.Contains(lower, "frequently asked") {
			depth.HasFAQ = true
		}
	}
	depth.AverageBodyLength = totalLen / len(pages)
	return depth
}

func detectContentPatterns(a analyzer.Analysis, pages []discovery.PageContent) ContentPatterns {
	var all strings.Builder
	for _, item := range a.Navigation {
		all.WriteString(strings.ToLower(item.URL))
		all.WriteString(" ")
		all.WriteString(strings.ToLower(item.Label))
		all.WriteString(" ")
	}
	for _, page := range pages {
		all.WriteString(strings.ToLower(page.URL))
		all.WriteString(" ")
		all.WriteString(strings.ToLower(page.BodyText))
		all.WriteString(" ")
	}
	text := all.String()

	patterns := ContentPatterns{
		HasBlog:         strings.Contains(text, "blog"),
		HasCaseStudies:  strings.Contains(text, "case stud"),
		HasPricing:      strings.Contains(text, "pricing"),
		HasPortfolio:    strings.Contains(text, "portfolio"),
		HasTeamProfiles: len(a.Team) > 0,
	}
	avg := analyzeContentDepth(pages).AverageBodyLength
	switch {
	case avg > 1500:
		patterns.ContentStyle = "detailed"
	case avg > 600:
		patterns.ContentStyle = "standard"
	default:
		patterns.ContentStyle = "brief"
	}
	return patterns
}

func discoveryReport(out DiscoveryOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Discovery Report: %s\n\n", out.URL)
	fmt.Fprintf(&b, "- Business: %s\n", out.BusinessInfo.Name)
	fmt.Fprintf(&b, "- Type: %s\n", out.BusinessType)
	fmt.Fprintf(&b, "- Taxonomy: %s\n", out.Taxonomy)
	fmt.Fprintf(&b, "- Pages discovered: %d\n", out.ContentDepth.TotalPages)
	fmt.Fprintf(&b, "- Content style: %s\n\n", out.Patterns.ContentStyle)

	if len(out.Services) > 0 {
		b.WriteString("## Services\n\n")
		for _, svc := range out.Services {
			fmt.Fprintf(&b, "- %s (%s)\n", svc.Name, svc.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Contact\n\n")
	fmt.Fprintf(&b, "- Phone: %s\n", orNone(out.Contact.Phone))
	fmt.Fprintf(&b, "- Email: %s\n", orNone(out.Contact.Email))
	fmt.Fprintf(&b, "- Address: %s\n", orNone(out.Contact.Address))
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "not found"
	}
	return s
}
