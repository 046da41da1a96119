package stages

import (
	"fmt"

	"github.com/siteforge/siteforge/internal/pipeline"
)

// Validators returns the checkpoint validator for each stage. Stages
// without specific checks get a nil entry, which the pipeline treats as
// always-pass.
func Validators() map[string]pipeline.Validator {
	return map[string]pipeline.Validator{
		StageDiscovery:            ValidateDiscovery,
		StageArchitecturePlanning: ValidatePlanning,
		StageContentStrategy:      ValidateStrategy,
	}
}

// ValidateDiscovery blocks on a missing business name and warns on thin
// service or contact coverage.
func ValidateDiscovery(output pipeline.Payload) pipeline.Validation {
	var disc DiscoveryOutput
	if err := pipeline.Decode(output, &disc); err != nil {
		return decodeFailure(err)
	}

	v := pipeline.Validation{Passed: true}
	if disc.BusinessInfo.Name == "" {
		v.Errors = append(v.Errors, "business name not found")
		v.Passed = false
	}
	if len(disc.Services) < 3 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("only %d services discovered", len(disc.Services)))
	}
	if disc.Contact.Phone == "" && disc.Contact.Email == "" {
		v.Warnings = append(v.Warnings, "no contact phone or email found")
	}
	return v
}

// ValidatePlanning blocks on a missing structure or navigation and
// warns on very small sites.
func ValidatePlanning(output pipeline.Payload) pipeline.Validation {
	var plan PlanningOutput
	if err := pipeline.Decode(output, &plan); err != nil {
		return decodeFailure(err)
	}

	v := pipeline.Validation{Passed: true}
	if plan.Structure == nil {
		v.Errors = append(v.Errors, "site structure missing")
		v.Passed = false
	}
	if len(plan.Navigation) == 0 {
		v.Errors = append(v.Errors, "navigation missing")
		v.Passed = false
	}
	if plan.PageCount < 5 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("only %d pages planned", plan.PageCount))
	}
	return v
}

// ValidateStrategy blocks on missing outlines and warns when no
// keywords were mapped.
func ValidateStrategy(output pipeline.Payload) pipeline.Validation {
	var strategy StrategyOutput
	if err := pipeline.Decode(output, &strategy); err != nil {
		return decodeFailure(err)
	}

	v := pipeline.Validation{Passed: true}
	if len(strategy.Outlines) == 0 {
		v.Errors = append(v.Errors, "no content outlines produced")
		v.Passed = false
	}
	if len(strategy.KeywordMap) == 0 {
		v.Warnings = append(v.Warnings, "no keyword mapping available")
	}
	return v
}

func decodeFailure(err error) pipeline.Validation {
	return pipeline.Validation{
		Passed: false,
		Errors: []string{fmt.Sprintf("stage output does not match schema: %v", err)},
	}
}
