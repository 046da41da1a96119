package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// StageStatus is one stage's position relative to the current stage.
type StageStatus struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	CheckpointPassed bool   `json:"checkpoint_passed"`
	HasOutput        bool   `json:"has_output"`
}

// Status is a point-in-time snapshot of the pipeline.
type Status struct {
	ProjectName  string        `json:"project_name"`
	CurrentStage string        `json:"current_stage"`
	Complete     bool          `json:"complete"`
	Stages       []StageStatus `json:"stages"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Status reports where the pipeline stands.
func (m *Manager) Status() Status {
	st := Status{
		ProjectName:  m.state.ProjectName,
		CurrentStage: m.state.CurrentStageName,
		Complete:     m.state.CurrentStageName == TerminalStage,
		UpdatedAt:    m.state.Timestamp,
	}
	for i, stage := range m.stages {
		name := stage.Name()
		status := "pending"
		switch {
		case st.Complete || i < m.state.CurrentStage:
			status = "complete"
		case i == m.state.CurrentStage:
			status = "in_progress"
		}
		_, hasOutput := m.state.StageOutputs[name]
		st.Stages = append(st.Stages, StageStatus{
			Name:             name,
			Status:           status,
			CheckpointPassed: m.state.checkpointPassed(name),
			HasOutput:        hasOutput,
		})
	}
	return st
}

// ProgressReport renders a human-readable summary of the pipeline.
func (m *Manager) ProgressReport() string {
	status := m.Status()

	var b strings.Builder
	fmt.Fprintf(&b, "# Pipeline Progress: %s\n\n", status.ProjectName)
	fmt.Fprintf(&b, "Current stage: %s\n\n", status.CurrentStage)
	for _, s := range status.Stages {
		marker := " "
		switch s.Status {
		case "complete":
			marker = "x"
		case "in_progress":
			marker = ">"
		}
		fmt.Fprintf(&b, "- [%s] %s", marker, s.Name)
		if s.CheckpointPassed {
			b.WriteString(" (checkpoint passed)")
		}
		b.WriteString("\n")
	}
	if mods := m.state.UserModifications; len(mods) > 0 {
		b.WriteString("\n## User modifications\n\n")
		for _, s := range m.stages {
			records, ok := mods[s.Name()]
			if !ok {
				continue
			}
			edits := 0
			for _, rec := range records {
				edits += len(rec.Modifications)
			}
			fmt.Fprintf(&b, "- %s: %d edit(s)\n", s.Name(), edits)
		}
	}
	return b.String()
}
