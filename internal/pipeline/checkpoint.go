package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// CheckpointReport is the persisted result of validating a stage output.
// CanProceed is the authoritative gate: a report with errors never
// allows advancement, whatever Passed says.
type CheckpointReport struct {
	Stage      string         `json:"stage"`
	Passed     bool           `json:"passed"`
	Errors     []string       `json:"errors"`
	Warnings   []string       `json:"warnings"`
	CanProceed bool           `json:"can_proceed"`
	Summary    map[string]any `json:"output_summary"`
	NextStage  *string        `json:"next_stage"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Checkpoint validates the named stage's output and records the result.
// A nil validator passes; a nil summarizer leaves the summary empty.
// NextStage is the stage that would run after an advance, nil when this
// is the last one. The report is written to checkpoint_<stage>.json,
// replacing any earlier report for the same stage.
func (m *Manager) Checkpoint(name string, validate Validator, summarize Summarizer) (CheckpointReport, error) {
	idx, err := m.stageIndex(name)
	if err != nil {
		return CheckpointReport{}, err
	}
	output, ok := m.state.StageOutputs[name]
	if !ok {
		return CheckpointReport{}, fmt.Errorf("stage %s has not run", name)
	}

	report := CheckpointReport{
		Stage:     name,
		Passed:    true,
		Errors:    []string{},
		Warnings:  []string{},
		Summary:   map[string]any{},
		Timestamp: m.clock.Now(),
	}
	if idx+1 < len(m.stages) {
		next := m.stages[idx+1].Name()
		report.NextStage = &next
	}
	if summarize != nil {
		report.Summary = summarize(output)
	}
	if validate != nil {
		v := validate(output)
		report.Passed = v.Passed
		report.Errors = append(report.Errors, v.Errors...)
		report.Warnings = append(report.Warnings, v.Warnings...)
	}
	// Errors always block, even when a validator claims a pass.
	report.CanProceed = report.Passed && len(report.Errors) == 0

	if err := m.writeCheckpoint(report); err != nil {
		return report, err
	}
	m.logger.Info("checkpoint evaluated",
		zap.String("stage", name),
		zap.Bool("can_proceed", report.CanProceed),
		zap.Int("errors", len(report.Errors)),
		zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

func (m *Manager) writeCheckpoint(report CheckpointReport) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("checkpoint_%s.json", report.Stage)
	return os.WriteFile(filepath.Join(m.dir, name), raw, 0o644)
}

// LoadCheckpoint reads the last persisted report for a stage. Callers
// that want checkpoint-gated advancement check CanProceed here before
// calling ProceedToNextStage.
func (m *Manager) LoadCheckpoint(stage string) (CheckpointReport, error) {
	if _, err := m.stageIndex(stage); err != nil {
		return CheckpointReport{}, err
	}
	raw, err := os.ReadFile(filepath.Join(m.dir, fmt.Sprintf("checkpoint_%s.json", stage)))
	if err != nil {
		return CheckpointReport{}, err
	}
	var report CheckpointReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return CheckpointReport{}, err
	}
	return report, nil
}
