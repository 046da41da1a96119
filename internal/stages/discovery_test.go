package stages

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/analyzer"
	"github.com/siteforge/siteforge/internal/detector"
	"github.com/siteforge/siteforge/internal/discovery"
	"github.com/siteforge/siteforge/internal/fetcher"
	"github.com/siteforge/siteforge/internal/pipeline"
)

// fakeFetcher serves canned bodies keyed by exact URL.
type fakeFetcher struct {
	pages  map[string]string
	headOK map[string]bool
}

func (f *fakeFetcher) Get(_ context.Context, url string) (fetcher.Response, error) {
	body, ok := f.pages[url]
	if !ok {
		return fetcher.Response{URL: url, StatusCode: http.StatusNotFound}, errors.New("not found")
	}
	return fetcher.Response{URL: url, StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func (f *fakeFetcher) Head(_ context.Context, url string) (int, error) {
	if f.headOK[url] {
		return http.StatusOK, nil
	}
	return http.StatusNotFound, nil
}

const lawBase = "https://acme-law.example"

func lawFirmFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{
			lawBase: `<html>
<head>
<title>Acme Law | Chicago Attorneys</title>
<meta name="description" content="Attorneys serving Chicago families.">
</head>
<body>
<nav>
  <a href="/about">About</a>
  <a href="/services/divorce">Divorce</a>
  <a href="/contact">Contact</a>
</nav>
<h1>Acme Law</h1>
<p>Our attorneys and lawyers handle litigation across every practice area.</p>
<section class="team">
  <div class="member"><h3>Jane Roe</h3><p class="title">Managing Partner</p></div>
  <div class="member"><h3>John Doe</h3><p class="title">Associate</p></div>
</section>
<footer>Call (312) 555-0199 or <a href="mailto:office@acme-law.example">email us</a>.</footer>
</body></html>`,
			lawBase + "/services/divorce": `<html><body><main>
<h1>Divorce</h1>
<p>Our divorce attorneys guide you through every step of the legal process with care.</p>
</main></body></html>`,
			lawBase + "/about": `<html><body><main>
<h1>About</h1>
<p>Acme Law has served Chicago for decades with a team of dedicated attorneys.</p>
</main></body></html>`,
			lawBase + "/contact": `<html><body><main><h1>Contact</h1><p>Reach our office anytime to schedule a consultation with an attorney.</p></main></body></html>`,
		},
	}
}

func newDiscoveryStage(t *testing.T, fake *fakeFetcher) (*Discovery, string) {
	t.Helper()
	logger := zap.NewNop()
	dir := t.TempDir()
	stage := NewDiscovery(
		discovery.NewEngine(fake, discovery.Config{}, logger),
		analyzer.New(fake, logger),
		detector.New(detector.DefaultProfiles(), logger),
		dir,
		logger,
	)
	return stage, dir
}

func runDiscovery(t *testing.T, fake *fakeFetcher) DiscoveryOutput {
	t.Helper()
	stage, _ := newDiscoveryStage(t, fake)
	payload, err := stage.Run(context.Background(), pipeline.Payload{"url": lawBase})
	require.NoError(t, err)

	var out DiscoveryOutput
	require.NoError(t, pipeline.Decode(payload, &out))
	return out
}

func TestDiscoveryStage(t *testing.T) {
	t.Parallel()

	out := runDiscovery(t, lawFirmFetcher())

	require.Equal(t, "law_firm", out.BusinessType)
	require.Equal(t, "practice-areas", out.Taxonomy)
	require.Equal(t, "Acme Law", out.BusinessInfo.Name)
	require.Equal(t, "(312) 555-0199", out.Contact.Phone)
	require.Equal(t, "office@acme-law.example", out.Contact.Email)
	require.Contains(t, out.DiscoveredURLs["services"], lawBase+"/services/divorce")
	require.NotEmpty(t, out.Pages)
	require.Equal(t, len(out.Pages), out.ContentDepth.TotalPages)
}

func TestDiscoveryStageCapturesTeam(t *testing.T) {
	t.Parallel()

	out := runDiscovery(t, lawFirmFetcher())

	require.Len(t, out.Team, 2)
	require.Equal(t, "Jane Roe", out.Team[0].Name)
	require.Equal(t, "Managing Partner", out.Team[0].Title)
	require.Equal(t, "John Doe", out.Team[1].Name)
	require.True(t, out.Patterns.HasTeamProfiles)
}

func TestDiscoveryStageMergesServices(t *testing.T) {
	t.Parallel()

	out := runDiscovery(t, lawFirmFetcher())

	var names, sources []string
	for _, svc := range out.Services {
		names = append(names, svc.Name)
		sources = append(sources, svc.Source)
	}
	require.Contains(t, names, "Divorce")
	require.Contains(t, sources, "crawl")

	// The crawled /services/divorce URL and the nav label "Divorce"
	// collapse to a single entry.
	count := 0
	for _, n := range names {
		if n == "Divorce" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestDiscoveryStageWritesArtifacts(t *testing.T) {
	t.Parallel()

	stage, dir := newDiscoveryStage(t, lawFirmFetcher())
	_, err := stage.Run(context.Background(), pipeline.Payload{"url": lawBase})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "discovery", "discovery_output.json"))
	require.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(dir, "discovery", "discovery_report.md"))
	require.NoError(t, err)
	require.Contains(t, string(report), "Acme Law")
	require.Contains(t, string(report), "law_firm")
}

func TestDiscoveryStageRequiresURL(t *testing.T) {
	t.Parallel()

	stage, _ := newDiscoveryStage(t, lawFirmFetcher())
	_, err := stage.Run(context.Background(), pipeline.Payload{})
	require.Error(t, err)
}

func TestServiceNameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://x.example/services/estate-planning", "Estate Planning"},
		{"https://x.example/practice-areas/personal_injury/", "Personal Injury"},
		{"https://x.example/services/tax.html", "Tax"},
		{"https://x.example/", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, serviceNameFromURL(tt.url), tt.url)
	}
}
