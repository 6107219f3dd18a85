// Package settings holds the paths and flags of a sequence generation
// run, loaded from a YAML file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:generate sh -c "cd ../.. && go run ./tools/schema-generator/"

// DefaultFile is the settings file looked up in the current directory.
const DefaultFile = "ngsphy.yml"

const (
	alignmentsFolder = "alignments"
	replicateFolder  = "1"
	controlFileName  = "control.txt"
	stateFolder      = ".ngsphy"
)

// Settings defines the structure of ngsphy.yml.
type Settings struct {
	ProjectName          string `yaml:"project_name" jsonschema:"description=Name used for the timing report file"`
	OutputFolder         string `yaml:"output_folder" jsonschema:"description=Folder where alignments and reports are written"`
	IndelibleControlFile string `yaml:"indelible_control_file" jsonschema:"description=INDELible control file template"`
	GeneTreeFile         string `yaml:"gene_tree_file" jsonschema:"description=Newick gene tree file"`
	ProgramCommand       string `yaml:"program_command,omitempty" jsonschema:"description=INDELible executable,default=indelible"`
	RunningTimes         bool   `yaml:"running_times" jsonschema:"description=Write the per-locus timing report"`
	ValidateGeneTree     bool   `yaml:"validate_gene_tree,omitempty" jsonschema:"description=Parse the gene tree before writing the control file"`
	LogLevel             string `yaml:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// Default returns settings with every optional field filled in.
func Default() *Settings {
	return &Settings{
		ProjectName:    "ngsphy",
		OutputFolder:   ".",
		ProgramCommand: "indelible",
		LogLevel:       "info",
	}
}

// Load reads the settings file at path on top of the defaults. A missing
// file is not an error when path is the default file name.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return s, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings file %q: %w", path, err)
	}
	if s.ProgramCommand == "" {
		s.ProgramCommand = "indelible"
	}
	return s, nil
}

// Validate checks that the input files are set and readable.
func (s *Settings) Validate() error {
	var errs []error
	if s.ProjectName == "" {
		errs = append(errs, errors.New("project_name is not set"))
	}
	for _, f := range []struct{ key, path string }{
		{"indelible_control_file", s.IndelibleControlFile},
		{"gene_tree_file", s.GeneTreeFile},
	} {
		if f.path == "" {
			errs = append(errs, fmt.Errorf("%s is not set", f.key))
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
		}
	}
	return errors.Join(errs...)
}

// AlignmentsDir is the folder INDELible runs in.
func (s *Settings) AlignmentsDir() string {
	return filepath.Join(s.OutputFolder, alignmentsFolder, replicateFolder)
}

// ControlFileName is the name of the generated control file.
func (s *Settings) ControlFileName() string {
	return controlFileName
}

// ControlFilePath is where the generated control file is written.
func (s *Settings) ControlFilePath() string {
	return filepath.Join(s.AlignmentsDir(), controlFileName)
}

// StateDir holds the run state of the output folder.
func (s *Settings) StateDir() string {
	return filepath.Join(s.OutputFolder, stateFolder)
}
