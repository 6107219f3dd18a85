// Package simulator launches INDELible in the alignments folder and
// captures its console output.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mattsolo1/ngsphy-seqgen/pkg/exec"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/logging"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/outcome"
	"github.com/sirupsen/logrus"
)

// DefaultTool is the simulator name used in messages.
const DefaultTool = "INDELible"

// Runner launches the simulator binary.
type Runner struct {
	Exec exec.CommandExecutor
	Tool string

	log *logrus.Entry
}

// NewRunner returns a runner using executor to start processes.
func NewRunner(executor exec.CommandExecutor) *Runner {
	return &Runner{
		Exec: executor,
		Tool: DefaultTool,
		log:  logging.NewLogger("seqgen.simulator"),
	}
}

// Launch runs binary with controlFile as its only argument inside dir and
// returns the combined stdout and stderr. The process working directory is
// switched to dir for the duration of the call and restored afterwards.
// Failures are reported as *FatalError.
func (r *Runner) Launch(ctx context.Context, dir, binary, controlFile string) (string, error) {
	log := r.logger().WithFields(logrus.Fields{
		"dir":          dir,
		"binary":       binary,
		"control_file": controlFile,
	})
	fatal := &FatalError{
		Tool:        r.tool(),
		Dir:         dir,
		Binary:      binary,
		ControlFile: controlFile,
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		fatal.Kind = ChdirFailed
		fatal.Err = err
		return "", fatal
	}
	log.Info("Moving to alignments folder")
	restore, err := EnterDir(abs)
	if err != nil {
		fatal.Kind = ChdirFailed
		fatal.Err = err
		return "", fatal
	}
	defer func() {
		if err := restore(); err != nil {
			log.WithError(err).Warn("Could not restore working directory")
		}
	}()

	log.Infof("Running %s. This may take a while...", r.tool())
	out, err := r.Exec.CombinedOutput(ctx, abs, binary, controlFile)
	if err != nil {
		fatal.Kind = ExitFailed
		fatal.Output = string(out)
		fatal.ExitCode = -1
		fatal.Err = err
		var execErr *exec.ExecError
		if errors.As(err, &execErr) {
			fatal.ExitCode = execErr.ExitCode
			fatal.Err = execErr.Err
			if fatal.Output == "" {
				fatal.Output = execErr.Output
			}
		}
		return fatal.Output, fatal
	}
	log.Infof("%s launched", r.tool())
	return string(out), nil
}

// Run launches the simulator and converts any fatal condition into a failed
// outcome. The captured output is returned in both cases.
func (r *Runner) Run(ctx context.Context, dir, binary, controlFile string) (string, outcome.Outcome) {
	out, err := r.Launch(ctx, dir, binary, controlFile)
	if err != nil {
		var fatal *FatalError
		if errors.As(err, &fatal) {
			r.logger().WithField("kind", fatal.Kind).Error("Simulator run failed")
			return out, outcome.Failure(fatal.Error())
		}
		return out, outcome.Failure(err.Error())
	}
	msg := fmt.Sprintf("%s run has finished.", r.tool())
	r.logger().Info(msg)
	return out, outcome.Success(msg)
}

func (r *Runner) tool() string {
	if r.Tool == "" {
		return DefaultTool
	}
	return r.Tool
}

func (r *Runner) logger() *logrus.Entry {
	if r.log == nil {
		r.log = logging.NewLogger("seqgen.simulator")
	}
	return r.log
}
