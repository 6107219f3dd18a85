package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/exec"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/sequence"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/timing"
	"github.com/spf13/cobra"
)

func NewRunCmd(common *commonFlags) *cobra.Command {
	f := &settingsFlags{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Write the control file, run INDELible and collect timings",
		Long: `Write the control file, run INDELible in the alignments folder and collect
the CPU time of every simulated locus.

INDELible runs in the foreground and there is no timeout; interrupt with
Ctrl-C to stop it. With --running-times the timings are written to
<output>/alignments/1/<project>.indelible.time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, common, f)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}

			executor := &exec.RealCommandExecutor{}
			if _, err := executor.LookPath(s.ProgramCommand); err != nil {
				return fmt.Errorf("%s not found: %w", s.ProgramCommand, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGenerator(ctx, cmd, sequence.NewGenerator(s, executor))
		},
	}
	f.register(runCmd)
	return runCmd
}

func runGenerator(ctx context.Context, cmd *cobra.Command, g *sequence.Generator) error {
	res := g.Run(ctx)
	if !res.OK {
		return errors.New(res.Message)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), res.Message)
	fmt.Fprintf(out, "   Loci: %d\n", len(g.Records))
	if g.Settings.RunningTimes {
		fmt.Fprintf(out, "   Timings: %s\n", color.CyanString(timing.ReportPath(g.Settings.AlignmentsDir(), g.Settings.ProjectName)))
	}
	return nil
}
