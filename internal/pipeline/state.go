package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stateFileName = "pipeline_state.json"

// ModificationRecord is one audit entry for a batch of user edits to a
// stage output.
type ModificationRecord struct {
	Timestamp     time.Time      `json:"timestamp"`
	Modifications map[string]any `json:"modifications"`
}

// CheckpointPass marks a stage the pipeline advanced past.
type CheckpointPass struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the persisted pipeline position and accumulated outputs.
type State struct {
	ProjectName       string                          `json:"project_name"`
	CurrentStage      int                             `json:"current_stage"`
	CurrentStageName  string                          `json:"current_stage_name"`
	StageOutputs      map[string]Payload              `json:"stage_outputs"`
	UserModifications map[string][]ModificationRecord `json:"user_modifications"`
	CheckpointsPassed []CheckpointPass                `json:"checkpoints_passed"`
	Timestamp         time.Time                       `json:"timestamp"`
}

func newState(projectName, firstStage string) *State {
	return &State{
		ProjectName:       projectName,
		CurrentStage:      0,
		CurrentStageName:  firstStage,
		StageOutputs:      map[string]Payload{},
		UserModifications: map[string][]ModificationRecord{},
		CheckpointsPassed: []CheckpointPass{},
	}
}

// loadState reads the state file from dir. A missing or unreadable file
// returns nil so the caller can start fresh.
func loadState(dir string) (*State, error) {
	raw, err := os.ReadFile(filepath.Join(dir, stateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.StageOutputs == nil {
		s.StageOutputs = map[string]Payload{}
	}
	if s.UserModifications == nil {
		s.UserModifications = map[string][]ModificationRecord{}
	}
	return &s, nil
}

func (s *State) save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, stateFileName), raw, 0o644)
}

func (s *State) checkpointPassed(stage string) bool {
	for _, pass := range s.CheckpointsPassed {
		if pass.Stage == stage {
			return true
		}
	}
	return false
}
