package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/exec"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/sequence"
	"github.com/spf13/cobra"
)

func NewBuildCmd(common *commonFlags) *cobra.Command {
	f := &settingsFlags{}
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Write the INDELible control file without running INDELible",
		Long: `Write the INDELible control file for the configured template and gene tree
into <output>/alignments/1/control.txt.

Template lines after the first [NGSPHY...] directive are replaced by the
generated [TREE], [PARTITIONS] and [EVOLVE] sections. A [SETTINGS] header and
FASTA output directives are added when the template does not have them.

Examples:
  # Use the settings in ngsphy.yml
  seqgen build

  # Override the input files
  seqgen build -t control.template.txt -g g_trees1.trees -o out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, common, f)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}

			g := sequence.NewGenerator(s, &exec.RealCommandExecutor{})
			res := g.BuildControlFile()
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Control file written to %s\n", color.GreenString("✓"), s.ControlFilePath())
			return nil
		},
	}
	f.register(buildCmd)
	return buildCmd
}
