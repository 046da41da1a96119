package stages

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/pipeline"
)

// The later stages produce outline-level output: enough structure for
// checkpoints and downstream tooling without a content engine behind
// them.

// ContentStrategy derives a per-page content outline from the planned
// site structure.
type ContentStrategy struct {
	logger *zap.Logger
}

func NewContentStrategy(logger *zap.Logger) *ContentStrategy {
	return &ContentStrategy{logger: logger}
}

func (s *ContentStrategy) Name() string { return StageContentStrategy }

var templateSections = map[string][]string{
	"home":            {"hero", "services_overview", "trust_signals", "call_to_action"},
	"about":           {"story", "values", "team", "call_to_action"},
	"service_listing": {"intro", "service_grid", "call_to_action"},
	"service_detail":  {"overview", "benefits", "process", "call_to_action"},
	"contact":         {"contact_form", "location", "hours"},
	"blog":            {"post_list"},
}

var businessTone = map[string]string{
	"law_firm":         "authoritative",
	"medical_practice": "reassuring",
	"dental_practice":  "reassuring",
	"restaurant":       "inviting",
	"salon_spa":        "inviting",
	"fitness":          "energetic",
	"technology":       "confident",
}

func (s *ContentStrategy) Run(_ context.Context, input pipeline.Payload) (pipeline.Payload, error) {
	var plan PlanningOutput
	if err := pipeline.Decode(input, &plan); err != nil {
		return nil, fmt.Errorf("decoding planning output: %w", err)
	}
	if plan.Structure == nil {
		return nil, fmt.Errorf("content strategy needs a planning output as input")
	}

	tone := businessTone[plan.BusinessType]
	if tone == "" {
		tone = "professional"
	}

	out := StrategyOutput{
		Outlines:   map[string]Outline{},
		Tone:       tone,
		KeywordMap: plan.KeywordMap,
	}
	walkTree(plan.Structure, nil, func(node *PageNode, _ []string) {
		sections := templateSections[node.Template]
		if len(sections) == 0 {
			sections = []string{"intro", "body", "call_to_action"}
		}
		out.Outlines[node.Path] = Outline{
			Title:    node.Title,
			Sections: sections,
			Tone:     tone,
			Keywords: plan.KeywordMap[node.Path],
		}
	})

	s.logger.Info("content strategy ready", zap.Int("outlines", len(out.Outlines)))
	return pipeline.Encode(out)
}

// ContentGeneration fills each outline with placeholder copy blocks.
type ContentGeneration struct {
	logger *zap.Logger
}

func NewContentGeneration(logger *zap.Logger) *ContentGeneration {
	return &ContentGeneration{logger: logger}
}

func (s *ContentGeneration) Name() string { return StageContentGeneration }

func (s *ContentGeneration) Run(_ context.Context, input pipeline.Payload) (pipeline.Payload, error) {
	var strategy StrategyOutput
	if err := pipeline.Decode(input, &strategy); err != nil {
		return nil, fmt.Errorf("decoding strategy output: %w", err)
	}
	if len(strategy.Outlines) == 0 {
		return nil, fmt.Errorf("content generation needs a strategy output as input")
	}

	out := GenerationOutput{Pages: map[string]GeneratedPage{}}
	for pagePath, outline := range strategy.Outlines {
		page := GeneratedPage{Title: outline.Title}
		for _, section := range outline.Sections {
			page.Blocks = append(page.Blocks, ContentBlock{
				Heading: titleFromSlug(strings.ReplaceAll(section, "_", "-")),
				Body:    fmt.Sprintf("[%s copy for %s]", outline.Tone, outline.Title),
			})
		}
		out.Pages[pagePath] = page
	}
	out.PageCount = len(out.Pages)

	s.logger.Info("content generated", zap.Int("pages", out.PageCount))
	return pipeline.Encode(out)
}

// SiteEmission lays out the generated pages as files under the project
// directory.
type SiteEmission struct {
	writer *artifactWriter
	logger *zap.Logger
}

func NewSiteEmission(outputDir string, logger *zap.Logger) *SiteEmission {
	return &SiteEmission{writer: newArtifactWriter(outputDir, logger), logger: logger}
}

func (s *SiteEmission) Name() string { return StageSiteEmission }

func (s *SiteEmission) Run(_ context.Context, input pipeline.Payload) (pipeline.Payload, error) {
	var generated GenerationOutput
	if err := pipeline.Decode(input, &generated); err != nil {
		return nil, fmt.Errorf("decoding generation output: %w", err)
	}
	if len(generated.Pages) == 0 {
		return nil, fmt.Errorf("site emission needs a generation output as input")
	}

	paths := make([]string, 0, len(generated.Pages))
	for pagePath := range generated.Pages {
		paths = append(paths, pagePath)
	}
	sort.Strings(paths)

	out := EmissionOutput{OutputDir: "site"}
	for _, pagePath := range paths {
		page := generated.Pages[pagePath]
		file := pageFileName(pagePath)
		s.writer.writeText("site", file, renderPage(page))
		out.Files = append(out.Files, path.Join("site", file))
	}
	out.PageCount = len(out.Files)

	s.logger.Info("site emitted", zap.Int("files", out.PageCount))
	return pipeline.Encode(out)
}

func pageFileName(pagePath string) string {
	trimmed := strings.Trim(pagePath, "/")
	if trimmed == "" {
		return "index.md"
	}
	return strings.ReplaceAll(trimmed, "/", "_") + ".md"
}

func renderPage(page GeneratedPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", page.Title)
	for _, block := range page.Blocks {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", block.Heading, block.Body)
	}
	return b.String()
}
