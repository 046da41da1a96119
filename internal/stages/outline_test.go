package stages

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/pipeline"
)

func runStrategy(t *testing.T, plan PlanningOutput) StrategyOutput {
	t.Helper()
	input, err := pipeline.Encode(plan)
	require.NoError(t, err)

	payload, err := NewContentStrategy(zap.NewNop()).Run(context.Background(), input)
	require.NoError(t, err)

	var out StrategyOutput
	require.NoError(t, pipeline.Decode(payload, &out))
	return out
}

func TestContentStrategyOutlines(t *testing.T) {
	t.Parallel()

	plan := runPlanning(t, sampleDiscoveryOutput())
	out := runStrategy(t, plan)

	require.Equal(t, "authoritative", out.Tone)
	require.Len(t, out.Outlines, plan.PageCount)

	home := out.Outlines["/"]
	require.Equal(t, "Home", home.Title)
	require.Contains(t, home.Sections, "hero")
	require.Equal(t, []string{"Acme Law", "law", "attorneys"}, home.Keywords)

	detail := out.Outlines["/practice-areas/divorce"]
	require.Contains(t, detail.Sections, "benefits")
}

func TestContentStrategyDefaultTone(t *testing.T) {
	t.Parallel()

	disc := sampleDiscoveryOutput()
	disc.BusinessType = "general"
	out := runStrategy(t, runPlanning(t, disc))

	require.Equal(t, "professional", out.Tone)
}

func TestContentGeneration(t *testing.T) {
	t.Parallel()

	strategy := runStrategy(t, runPlanning(t, sampleDiscoveryOutput()))
	input, err := pipeline.Encode(strategy)
	require.NoError(t, err)

	payload, err := NewContentGeneration(zap.NewNop()).Run(context.Background(), input)
	require.NoError(t, err)

	var out GenerationOutput
	require.NoError(t, pipeline.Decode(payload, &out))

	require.Equal(t, len(strategy.Outlines), out.PageCount)
	home := out.Pages["/"]
	require.Equal(t, "Home", home.Title)
	require.Len(t, home.Blocks, len(strategy.Outlines["/"].Sections))
	require.Equal(t, "Hero", home.Blocks[0].Heading)
}

func TestSiteEmission(t *testing.T) {
	t.Parallel()

	strategy := runStrategy(t, runPlanning(t, sampleDiscoveryOutput()))
	genInput, err := pipeline.Encode(strategy)
	require.NoError(t, err)
	genPayload, err := NewContentGeneration(zap.NewNop()).Run(context.Background(), genInput)
	require.NoError(t, err)

	dir := t.TempDir()
	payload, err := NewSiteEmission(dir, zap.NewNop()).Run(context.Background(), genPayload)
	require.NoError(t, err)

	var out EmissionOutput
	require.NoError(t, pipeline.Decode(payload, &out))

	require.Equal(t, len(strategy.Outlines), out.PageCount)
	require.Contains(t, out.Files, "site/index.md")
	require.Contains(t, out.Files, "site/practice-areas_divorce.md")

	raw, err := os.ReadFile(filepath.Join(dir, "site", "index.md"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "# Home")
}

func TestOutlineStagesRejectEmptyInput(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	ctx := context.Background()

	_, err := NewContentStrategy(logger).Run(ctx, pipeline.Payload{})
	require.Error(t, err)
	_, err = NewContentGeneration(logger).Run(ctx, pipeline.Payload{})
	require.Error(t, err)
	_, err = NewSiteEmission(t.TempDir(), logger).Run(ctx, pipeline.Payload{})
	require.Error(t, err)
}
