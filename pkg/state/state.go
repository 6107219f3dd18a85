package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const stateFileName = "state.yml"

// RunRecord describes the last sequence generation run of an output
// folder. Later NGS stages read the loci and prefix values from it.
type RunRecord struct {
	ID                  string    `yaml:"id"`
	StartedAt           time.Time `yaml:"started_at"`
	FinishedAt          time.Time `yaml:"finished_at,omitempty"`
	ControlFile         string    `yaml:"control_file"`
	DataPrefix          string    `yaml:"data_prefix"`
	NumLociPerReplicate int       `yaml:"num_loci_per_replicate"`
	FilteredReplicates  int       `yaml:"filtered_replicates"`
	TimingReport        string    `yaml:"timing_report,omitempty"`
	Loci                int       `yaml:"loci"`
	OK                  bool      `yaml:"ok"`
	Message             string    `yaml:"message,omitempty"`
}

// State represents the local run state of an output folder.
type State struct {
	LastRun *RunRecord `yaml:"last_run,omitempty"`
}

// NewRunID returns a short unique run identifier.
func NewRunID() string {
	return "run-" + uuid.New().String()[:8]
}

// stateFilePath returns the path to the state file in dir.
func stateFilePath(dir string) string {
	return filepath.Join(dir, stateFileName)
}

// LoadState loads the state from the state file in dir.
func LoadState(dir string) (*State, error) {
	data, err := os.ReadFile(stateFilePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty state if file doesn't exist
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	return &state, nil
}

// SaveState saves the state to the state file in dir.
func SaveState(dir string, state *State) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(stateFilePath(dir), data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// RecordRun stores rec as the last run.
func RecordRun(dir string, rec *RunRecord) error {
	state, err := LoadState(dir)
	if err != nil {
		return err
	}

	state.LastRun = rec
	return SaveState(dir, state)
}

// LastRun returns the last recorded run, nil if there is none.
func LastRun(dir string) (*RunRecord, error) {
	state, err := LoadState(dir)
	if err != nil {
		return nil, err
	}
	return state.LastRun, nil
}
