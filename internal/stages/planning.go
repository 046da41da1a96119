package stages

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/pipeline"
)

// ArchitecturePlanning turns the discovery output into a planned site
// structure: a page tree, navigation, URL patterns, templates, and an
// initial keyword mapping.
type ArchitecturePlanning struct {
	writer *artifactWriter
	logger *zap.Logger
}

func NewArchitecturePlanning(outputDir string, logger *zap.Logger) *ArchitecturePlanning {
	return &ArchitecturePlanning{writer: newArtifactWriter(outputDir, logger), logger: logger}
}

func (s *ArchitecturePlanning) Name() string { return StageArchitecturePlanning }

func (s *ArchitecturePlanning) Run(_ context.Context, input pipeline.Payload) (pipeline.Payload, error) {
	var disc DiscoveryOutput
	if err := pipeline.Decode(input, &disc); err != nil {
		return nil, fmt.Errorf("decoding discovery output: %w", err)
	}
	if disc.URL == "" {
		return nil, fmt.Errorf("planning needs a discovery output as input")
	}

	taxonomy := disc.Taxonomy
	if taxonomy == "" {
		taxonomy = "services"
	}

	root := &PageNode{Title: "Home", Path: "/", Template: "home"}
	root.Children = append(root.Children, &PageNode{Title: "About", Path: "/about", Template: "about"})

	listing := &PageNode{
		Title:    titleFromSlug(taxonomy),
		Path:     "/" + taxonomy,
		Template: "service_listing",
	}
	for _, svc := range disc.Services {
		if svc.Name == "" || strings.EqualFold(svc.Name, listing.Title) {
			continue
		}
		listing.Children = append(listing.Children, &PageNode{
			Title:    svc.Name,
			Path:     "/" + taxonomy + "/" + slugify(svc.Name),
			Template: "service_detail",
		})
	}
	root.Children = append(root.Children, listing)

	if disc.Patterns.HasBlog {
		root.Children = append(root.Children, &PageNode{Title: "Blog", Path: "/blog", Template: "blog"})
	}
	root.Children = append(root.Children, &PageNode{Title: "Contact", Path: "/contact", Template: "contact"})

	out := PlanningOutput{
		BusinessType: disc.BusinessType,
		Structure:    root,
		URLPatterns: map[string]string{
			"service_listing": "/" + taxonomy,
			"service_detail":  "/" + taxonomy + "/{slug}",
		},
		Templates:   map[string]string{},
		Breadcrumbs: map[string][]string{},
		KeywordMap:  keywordMap(disc, taxonomy),
	}
	for _, child := range root.Children {
		out.Navigation = append(out.Navigation, child.Title)
	}

	// Depth-first walk fills templates, breadcrumbs, and the page count.
	walkTree(root, nil, func(node *PageNode, trail []string) {
		out.Templates[node.Path] = node.Template
		out.Breadcrumbs[node.Path] = trail
		out.PageCount++
	})

	s.logger.Info("architecture planned",
		zap.Int("pages", out.PageCount),
		zap.Int("navigation", len(out.Navigation)))

	s.writer.writeJSON("planning", "site_structure.json", out)
	return pipeline.Encode(out)
}

// walkTree visits nodes depth first. trail holds the titles from the
// root down to and including the visited node.
func walkTree(node *PageNode, parents []string, visit func(node *PageNode, trail []string)) {
	trail := append(append([]string{}, parents...), node.Title)
	visit(node, trail)
	for _, child := range node.Children {
		walkTree(child, trail, visit)
	}
}

func keywordMap(disc DiscoveryOutput, taxonomy string) map[string][]string {
	km := map[string][]string{}
	base := strings.TrimSpace(disc.BusinessInfo.Name)

	var home []string
	if base != "" {
		home = append(home, base)
	}
	for _, kw := range strings.Split(disc.SEO.Keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			home = append(home, kw)
		}
	}
	if len(home) > 0 {
		km["/"] = home
	}
	for _, svc := range disc.Services {
		if svc.Name == "" {
			continue
		}
		keywords := []string{strings.ToLower(svc.Name)}
		if base != "" {
			keywords = append(keywords, base+" "+strings.ToLower(svc.Name))
		}
		km["/"+taxonomy+"/"+slugify(svc.Name)] = keywords
	}
	return km
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
