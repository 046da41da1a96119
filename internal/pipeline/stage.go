package pipeline

import (
	"context"
	"time"
)

// Stage is one step of the rebuild pipeline. Run receives the previous
// stage's output and returns its own.
type Stage interface {
	Name() string
	Run(ctx context.Context, input Payload) (Payload, error)
}

// Validation is what a Validator reports about a stage output.
type Validation struct {
	Passed   bool
	Errors   []string
	Warnings []string
}

// Validator inspects a stage's output at a checkpoint. Errors block
// advancement regardless of Passed; warnings do not.
type Validator func(output Payload) Validation

// Summarizer condenses a stage's output into the figures worth showing
// at its checkpoint.
type Summarizer func(output Payload) map[string]any

// Clock supplies timestamps. The indirection keeps persisted state
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
