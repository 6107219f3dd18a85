package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/controlfile"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/timing"
	"github.com/spf13/cobra"
)

func NewExtractCmd() *cobra.Command {
	var (
		prefix  string
		report  string
		summary bool
	)
	extractCmd := &cobra.Command{
		Use:   "extract [log-file]",
		Short: "Extract per-locus CPU times from saved INDELible output",
		Long: `Extract per-locus CPU times from INDELible console output saved to a file.
Without a file, or with "-", the output is read from standard input.

The timings are printed as CSV unless --report is given.

Examples:
  indelible control.txt 2>&1 | tee indelible.log
  seqgen extract indelible.log --report primates.indelible.time`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r, name = f, args[0]
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("while reading %q: %w", name, err)
			}

			records, err := timing.Extract(string(data), prefix)
			if err != nil {
				return fmt.Errorf("while reading %q: %w", name, err)
			}

			if report != "" {
				if err := timing.WriteReportFile(report, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d timings written to %s\n", color.GreenString("✓"), len(records), report)
			} else if err := timing.WriteReport(cmd.OutOrStdout(), records); err != nil {
				return err
			}

			if summary {
				sum, err := timing.Summarize(records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s loci=%d total=%.4fs mean=%.4fs median=%.4fs max=%.4fs\n",
					color.CyanString("CPU time:"), sum.Loci, sum.Total, sum.Mean, sum.Median, sum.Max)
			}
			return nil
		},
	}
	extractCmd.Flags().StringVar(&prefix, "prefix", controlfile.DefaultDataPrefix, "Data prefix of the [EVOLVE] block")
	extractCmd.Flags().StringVarP(&report, "report", "r", "", "Write the timings to this file")
	extractCmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print a CPU time summary to stderr")
	return extractCmd
}
