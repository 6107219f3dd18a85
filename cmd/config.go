package cmd

import (
	"fmt"

	"github.com/mattsolo1/ngsphy-seqgen/pkg/logging"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/settings"
	"github.com/spf13/cobra"
)

// commonFlags are the persistent flags of the root command.
type commonFlags struct {
	configFile string
	logLevel   string
}

// settingsFlags override values of the settings file.
type settingsFlags struct {
	project      string
	output       string
	template     string
	geneTree     string
	program      string
	runningTimes bool
	validateTree bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project name used for the timing report")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output folder")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "INDELible control file template")
	cmd.Flags().StringVarP(&f.geneTree, "gene-tree", "g", "", "Gene tree file (Newick)")
	cmd.Flags().StringVar(&f.program, "program", "", "INDELible executable")
	cmd.Flags().BoolVar(&f.runningTimes, "running-times", false, "Write the per-locus timing report")
	cmd.Flags().BoolVar(&f.validateTree, "validate-tree", false, "Parse the gene tree before writing the control file")
}

// loadSettings reads the settings file and applies the flags that were set
// on the command line.
func loadSettings(cmd *cobra.Command, common *commonFlags, f *settingsFlags) (*settings.Settings, error) {
	s, err := settings.Load(common.configFile)
	if err != nil {
		return nil, err
	}

	if f != nil {
		flags := cmd.Flags()
		if flags.Changed("project") {
			s.ProjectName = f.project
		}
		if flags.Changed("output") {
			s.OutputFolder = f.output
		}
		if flags.Changed("template") {
			s.IndelibleControlFile = f.template
		}
		if flags.Changed("gene-tree") {
			s.GeneTreeFile = f.geneTree
		}
		if flags.Changed("program") {
			s.ProgramCommand = f.program
		}
		if flags.Changed("running-times") {
			s.RunningTimes = f.runningTimes
		}
		if flags.Changed("validate-tree") {
			s.ValidateGeneTree = f.validateTree
		}
	}

	level := s.LogLevel
	if common.logLevel != "" {
		level = common.logLevel
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return s, nil
}
