package exec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExecError wraps an execution error with the command output
type ExecError struct {
	Err      error
	Output   string
	ExitCode int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Output)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// RealCommandExecutor implements CommandExecutor using the actual os/exec package.
// This is the production implementation that executes real system commands.
type RealCommandExecutor struct{}

// LookPath searches for an executable named file in the directories
// named by the PATH environment variable.
func (e *RealCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CombinedOutput runs the command in dir and returns its combined output.
// A non-zero exit is reported as an *ExecError carrying the output.
func (e *RealCommandExecutor) CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return output, &ExecError{
			Err:      err,
			Output:   string(output),
			ExitCode: code,
		}
	}
	return output, nil
}
