package cmd

import (
	"github.com/mattsolo1/ngsphy-seqgen/pkg/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the seqgen command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	common := &commonFlags{}
	rootCmd := &cobra.Command{
		Use:   "seqgen",
		Short: "Generate sequence alignments from gene trees with INDELible",
		Long: `Generate sequence alignments from gene trees with INDELible.

seqgen rewrites an INDELible control file template so that it simulates the
given gene tree, runs INDELible in the alignments folder and collects the CPU
time of every simulated locus.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetOutput(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&common.configFile, "config", "c", "", "Settings file (default ngsphy.yml)")
	rootCmd.PersistentFlags().StringVar(&common.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(NewBuildCmd(common))
	rootCmd.AddCommand(NewRunCmd(common))
	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewStatusCmd(common))
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}
