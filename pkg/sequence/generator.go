// Package sequence runs the INDELible stage of an NGSphy simulation: it
// writes the control file, launches the simulator and collects the per-locus
// timings.
package sequence

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattsolo1/ngsphy-seqgen/pkg/controlfile"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/exec"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/logging"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/outcome"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/settings"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/simulator"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/state"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/timing"
	"github.com/sirupsen/logrus"
)

// Generator drives one sequence generation run.
type Generator struct {
	Settings *settings.Settings
	Builder  *controlfile.Builder
	Runner   *simulator.Runner

	// Records holds the timings of the last Run.
	Records []timing.Record

	log *logrus.Entry
}

// NewGenerator returns a generator for s that starts processes with
// executor.
func NewGenerator(s *settings.Settings, executor exec.CommandExecutor) *Generator {
	b := controlfile.NewBuilder()
	b.ValidateTree = s.ValidateGeneTree
	return &Generator{
		Settings: s,
		Builder:  b,
		Runner:   simulator.NewRunner(executor),
		log:      logging.NewLogger("seqgen.sequence"),
	}
}

// Prepare creates the alignments folder.
func (g *Generator) Prepare() error {
	dir := g.Settings.AlignmentsDir()
	if _, err := os.Stat(dir); err == nil {
		g.log.WithField("dir", dir).Debug("Data folder exists")
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating alignments folder: %w", err)
	}
	g.log.WithField("dir", dir).Info("Generating data folder")
	return nil
}

// BuildControlFile writes the control file for the configured template and
// gene tree.
func (g *Generator) BuildControlFile() outcome.Outcome {
	if err := g.Prepare(); err != nil {
		return outcome.IOFailure(err, "creating the alignments folder")
	}
	return g.Builder.Build(
		g.Settings.IndelibleControlFile,
		g.Settings.GeneTreeFile,
		g.Settings.ControlFilePath(),
	)
}

// Run builds the control file, launches the simulator, extracts the
// timings and, when enabled, writes the timing report. The first failing
// step ends the run. The outcome is recorded in the run state.
func (g *Generator) Run(ctx context.Context) outcome.Outcome {
	rec := &state.RunRecord{
		ID:                  state.NewRunID(),
		StartedAt:           time.Now(),
		ControlFile:         g.Settings.ControlFilePath(),
		DataPrefix:          g.Builder.DataPrefix,
		NumLociPerReplicate: 1,
		FilteredReplicates:  1,
	}
	log := g.log.WithField("run_id", rec.ID)

	res := g.run(ctx, log, rec)
	rec.FinishedAt = time.Now()
	rec.OK = res.OK
	if !res.OK {
		rec.Message = strings.TrimSpace(res.Message)
	}
	if err := state.RecordRun(g.Settings.StateDir(), rec); err != nil {
		log.WithError(err).Warn("Could not record run state")
	}
	return res
}

func (g *Generator) run(ctx context.Context, log *logrus.Entry, rec *state.RunRecord) outcome.Outcome {
	if res := g.BuildControlFile(); !res.OK {
		return res
	}

	dir := g.Settings.AlignmentsDir()
	if err := CreateLockFile(dir, os.Getpid()); err != nil {
		return outcome.Failure(fmt.Sprintf("\n\t%v\n\t%s\n", err, "Please verify and rerun. Exiting."))
	}
	defer func() {
		if err := RemoveLockFile(dir); err != nil {
			log.WithError(err).Warn("Could not remove lock file")
		}
	}()

	log.Info("Waiting for INDELible process to finish. This may take a while...")
	output, res := g.Runner.Run(ctx, dir, g.Settings.ProgramCommand, g.Settings.ControlFileName())
	if path, err := saveOutput(dir, output); err != nil {
		log.WithError(err).Warn("Could not save simulator output")
	} else {
		log.WithField("path", path).Debug("Simulator output saved")
	}
	if !res.OK {
		return res
	}

	records, err := timing.Extract(output, g.Builder.DataPrefix)
	if err != nil {
		return outcome.Failure(fmt.Sprintf("\n\t%v\n\t%s\n", err, "Stopped while reading the INDELible output. Exiting."))
	}
	g.Records = records
	rec.Loci = len(records)
	if sum, err := timing.Summarize(records); err == nil && sum.Loci > 0 {
		log.WithFields(logrus.Fields{
			"loci":   sum.Loci,
			"total":  sum.Total,
			"mean":   sum.Mean,
			"median": sum.Median,
		}).Info("CPU time per locus")
	}

	if g.Settings.RunningTimes {
		path := timing.ReportPath(dir, g.Settings.ProjectName)
		if err := timing.WriteReportFile(path, records); err != nil {
			return outcome.IOFailure(err, "writing the INDELible timing report")
		}
		rec.TimingReport = path
		log.Infof("File with timings of the INDELible run can be found on: %s", path)
	}
	return res
}
