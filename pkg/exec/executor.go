package exec

import "context"

// CommandExecutor defines an interface for running external commands.
// This abstraction allows for easier testing by providing a mockable interface.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the directories
	// named by the PATH environment variable.
	LookPath(file string) (string, error)

	// CombinedOutput runs the command with the given name and arguments in
	// dir and waits for it to complete. It returns stdout and stderr
	// interleaved as the process wrote them.
	CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error)
}
