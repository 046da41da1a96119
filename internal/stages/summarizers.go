package stages

import (
	"github.com/siteforge/siteforge/internal/pipeline"
)

// Summarizers returns the checkpoint summarizer for each stage. The
// summary is informational only; schema problems are the validators'
// concern, so a summarizer that cannot decode returns nil.
func Summarizers() map[string]pipeline.Summarizer {
	return map[string]pipeline.Summarizer{
		StageDiscovery:            SummarizeDiscovery,
		StageArchitecturePlanning: SummarizePlanning,
		StageContentStrategy:      SummarizeStrategy,
		StageContentGeneration:    SummarizeGeneration,
		StageSiteEmission:         SummarizeEmission,
	}
}

func SummarizeDiscovery(output pipeline.Payload) map[string]any {
	var disc DiscoveryOutput
	if err := pipeline.Decode(output, &disc); err != nil {
		return nil
	}
	urls := 0
	for _, list := range disc.DiscoveredURLs {
		urls += len(list)
	}
	return map[string]any{
		"url":             disc.URL,
		"business_name":   disc.BusinessInfo.Name,
		"business_type":   disc.BusinessType,
		"services_found":  len(disc.Services),
		"pages_crawled":   len(disc.Pages),
		"urls_discovered": urls,
	}
}

func SummarizePlanning(output pipeline.Payload) map[string]any {
	var plan PlanningOutput
	if err := pipeline.Decode(output, &plan); err != nil {
		return nil
	}
	return map[string]any{
		"business_type": plan.BusinessType,
		"pages_planned": plan.PageCount,
		"navigation":    plan.Navigation,
	}
}

func SummarizeStrategy(output pipeline.Payload) map[string]any {
	var strategy StrategyOutput
	if err := pipeline.Decode(output, &strategy); err != nil {
		return nil
	}
	return map[string]any{
		"outlines": len(strategy.Outlines),
		"tone":     strategy.Tone,
		"keywords": len(strategy.KeywordMap),
	}
}

func SummarizeGeneration(output pipeline.Payload) map[string]any {
	var gen GenerationOutput
	if err := pipeline.Decode(output, &gen); err != nil {
		return nil
	}
	return map[string]any{
		"pages_generated": gen.PageCount,
	}
}

func SummarizeEmission(output pipeline.Payload) map[string]any {
	var em EmissionOutput
	if err := pipeline.Decode(output, &em); err != nil {
		return nil
	}
	return map[string]any{
		"output_dir":    em.OutputDir,
		"files_written": len(em.Files),
	}
}
