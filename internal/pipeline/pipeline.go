// Package pipeline drives the staged, checkpointed website rebuild. It
// persists its position after every operation so a run can stop at any
// point and resume where it left off.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/telemetry"
)

// TerminalStage is the pseudo-stage reached after the last real stage.
const TerminalStage = "complete"

// ErrUnknownStage is returned for stage names outside the registry.
var ErrUnknownStage = errors.New("unknown stage")

// Manager owns the pipeline state for one project.
type Manager struct {
	dir    string
	stages []Stage
	clock  Clock
	logger *zap.Logger
	state  *State
}

// Option tweaks Manager construction.
type Option func(*Manager)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// New loads or creates the pipeline for a project. State lives under
// dir; a corrupt state file is logged and replaced with a fresh one.
func New(projectName, dir string, stages []Stage, logger *zap.Logger, opts ...Option) (*Manager, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipeline needs at least one stage")
	}
	m := &Manager{
		dir:    dir,
		stages: stages,
		clock:  systemClock{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	state, err := loadState(dir)
	if err != nil {
		logger.Warn("state file unreadable, starting fresh", zap.String("dir", dir), zap.Error(err))
		state = nil
	}
	if state != nil && !m.stateMatchesRegistry(state) {
		logger.Warn("state file does not match stage registry, starting fresh",
			zap.String("stage", state.CurrentStageName))
		state = nil
	}
	if state == nil {
		state = newState(projectName, stages[0].Name())
		state.Timestamp = m.clock.Now()
	} else {
		logger.Info("resumed pipeline",
			zap.String("project", state.ProjectName),
			zap.String("stage", state.CurrentStageName))
	}
	m.state = state
	return m, nil
}

// stateMatchesRegistry checks that a loaded state's position points at a
// stage this manager knows about.
func (m *Manager) stateMatchesRegistry(state *State) bool {
	if state.CurrentStageName == TerminalStage {
		return state.CurrentStage == len(m.stages)
	}
	return state.CurrentStage >= 0 &&
		state.CurrentStage < len(m.stages) &&
		m.stages[state.CurrentStage].Name() == state.CurrentStageName
}

// StageNames returns the registered stage names in execution order.
func (m *Manager) StageNames() []string {
	names := make([]string, len(m.stages))
	for i, s := range m.stages {
		names[i] = s.Name()
	}
	return names
}

func (m *Manager) stageIndex(name string) (int, error) {
	for i, s := range m.stages {
		if s.Name() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownStage, name)
}

// RunStage executes the named stage. A nil input defaults to the
// previous stage's stored output, so resumed runs pick up where the
// last stage left off. The output is stored and the state saved before
// returning. Running a stage never moves the pipeline position; only
// ProceedToNextStage does that.
func (m *Manager) RunStage(ctx context.Context, name string, input Payload) (Payload, error) {
	idx, err := m.stageIndex(name)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = m.previousOutput(idx)
	}

	m.logger.Info("running stage", zap.String("stage", name))
	output, err := m.stages[idx].Run(ctx, input)
	telemetry.ObserveStageRun(name, err)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}

	m.state.StageOutputs[name] = output
	m.state.Timestamp = m.clock.Now()
	if err := m.state.save(m.dir); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}
	return output, nil
}

func (m *Manager) previousOutput(idx int) Payload {
	if idx == 0 {
		return Payload{}
	}
	if out, ok := m.state.StageOutputs[m.stages[idx-1].Name()]; ok {
		return out
	}
	return Payload{}
}

// ApplyUserModifications writes the given dot-path edits into the named
// stage's output and records each one in the audit log.
func (m *Manager) ApplyUserModifications(name string, mods map[string]any) error {
	if _, err := m.stageIndex(name); err != nil {
		return err
	}
	output, ok := m.state.StageOutputs[name]
	if !ok {
		return fmt.Errorf("stage %s has no output to modify", name)
	}

	updated := output.Clone()
	for path, value := range mods {
		if err := SetByPath(updated, path, value); err != nil {
			return err
		}
	}
	m.state.UserModifications[name] = append(m.state.UserModifications[name], ModificationRecord{
		Timestamp:     m.clock.Now(),
		Modifications: mods,
	})
	m.state.StageOutputs[name] = updated
	m.state.Timestamp = m.clock.Now()
	return m.state.save(m.dir)
}

// ProceedToNextStage records the current stage as passed and advances
// the index. It reports whether a further stage remains; once past the
// last stage it logs and returns false without touching state. Gating
// on checkpoint results is the caller's job.
func (m *Manager) ProceedToNextStage() (bool, error) {
	if m.state.CurrentStageName == TerminalStage {
		m.logger.Warn("pipeline already complete")
		return false, nil
	}
	current := m.stages[m.state.CurrentStage].Name()
	m.state.CheckpointsPassed = append(m.state.CheckpointsPassed, CheckpointPass{
		Stage:     current,
		Timestamp: m.clock.Now(),
	})

	next := TerminalStage
	if m.state.CurrentStage+1 < len(m.stages) {
		m.state.CurrentStage++
		next = m.stages[m.state.CurrentStage].Name()
	} else {
		m.state.CurrentStage = len(m.stages)
	}
	m.state.CurrentStageName = next
	m.state.Timestamp = m.clock.Now()
	if err := m.state.save(m.dir); err != nil {
		return false, err
	}
	m.logger.Info("advanced pipeline", zap.String("stage", next))
	return next != TerminalStage, nil
}

// RestartFromStage rewinds the pipeline index to the named stage.
// Stored outputs stay addressable; the stage will overwrite its own
// output when it runs again.
func (m *Manager) RestartFromStage(name string) error {
	idx, err := m.stageIndex(name)
	if err != nil {
		return err
	}
	m.state.CurrentStage = idx
	m.state.CurrentStageName = name
	m.state.Timestamp = m.clock.Now()
	if err := m.state.save(m.dir); err != nil {
		return err
	}
	m.logger.Info("restarted pipeline", zap.String("stage", name))
	return nil
}

// StageOutput returns the stored output for a stage, if any.
func (m *Manager) StageOutput(name string) (Payload, bool) {
	out, ok := m.state.StageOutputs[name]
	return out, ok
}
