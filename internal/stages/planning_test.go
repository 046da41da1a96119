package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/analyzer"
	"github.com/siteforge/siteforge/internal/pipeline"
)

func sampleDiscoveryOutput() DiscoveryOutput {
	return DiscoveryOutput{
		URL:          "https://acme-law.example",
		BusinessType: "law_firm",
		BusinessInfo: analyzer.BusinessInfo{Name: "Acme Law"},
		SEO:          analyzer.SEOData{Keywords: "law, attorneys"},
		Taxonomy:     "practice-areas",
		Services: []Service{
			{Name: "Divorce", Source: "crawl"},
			{Name: "Estate Planning", Source: "homepage"},
		},
	}
}

func runPlanning(t *testing.T, disc DiscoveryOutput) PlanningOutput {
	t.Helper()
	input, err := pipeline.Encode(disc)
	require.NoError(t, err)

	stage := NewArchitecturePlanning(t.TempDir(), zap.NewNop())
	payload, err := stage.Run(context.Background(), input)
	require.NoError(t, err)

	var out PlanningOutput
	require.NoError(t, pipeline.Decode(payload, &out))
	return out
}

func TestPlanningBuildsTree(t *testing.T) {
	t.Parallel()

	out := runPlanning(t, sampleDiscoveryOutput())

	require.Equal(t, "law_firm", out.BusinessType)
	require.Equal(t, "/", out.Structure.Path)
	require.Equal(t, []string{"About", "Practice Areas", "Contact"}, out.Navigation)
	require.Equal(t, 6, out.PageCount)

	require.Equal(t, "/practice-areas", out.URLPatterns["service_listing"])
	require.Equal(t, "/practice-areas/{slug}", out.URLPatterns["service_detail"])
	require.Equal(t, "service_detail", out.Templates["/practice-areas/divorce"])
}

func TestPlanningBreadcrumbsFollowTree(t *testing.T) {
	t.Parallel()

	out := runPlanning(t, sampleDiscoveryOutput())

	require.Equal(t, []string{"Home"}, out.Breadcrumbs["/"])
	require.Equal(t, []string{"Home", "Practice Areas"}, out.Breadcrumbs["/practice-areas"])
	require.Equal(t,
		[]string{"Home", "Practice Areas", "Estate Planning"},
		out.Breadcrumbs["/practice-areas/estate-planning"])
}

func TestPlanningKeywordMap(t *testing.T) {
	t.Parallel()

	out := runPlanning(t, sampleDiscoveryOutput())

	require.Equal(t, []string{"Acme Law", "law", "attorneys"}, out.KeywordMap["/"])
	require.Contains(t, out.KeywordMap["/practice-areas/divorce"], "divorce")
}

func TestPlanningAddsBlogWhenPresent(t *testing.T) {
	t.Parallel()

	disc := sampleDiscoveryOutput()
	disc.Patterns.HasBlog = true
	out := runPlanning(t, disc)

	require.Contains(t, out.Navigation, "Blog")
	require.Equal(t, "blog", out.Templates["/blog"])
}

func TestPlanningRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	stage := NewArchitecturePlanning(t.TempDir(), zap.NewNop())
	_, err := stage.Run(context.Background(), pipeline.Payload{})
	require.Error(t, err)
}
