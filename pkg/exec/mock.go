package exec

import (
	"context"
	"strings"
)

// MockCommandExecutor is a mock implementation of CommandExecutor for testing.
// It records all commands that would be executed without actually running them.
type MockCommandExecutor struct {
	// Commands records all commands that were executed
	Commands []string

	// Dirs records the working directory of each executed command
	Dirs []string

	// LookPathFunc allows custom behavior for LookPath in tests
	LookPathFunc func(file string) (string, error)

	// OutputFunc allows custom behavior for CombinedOutput in tests
	OutputFunc func(dir, name string, arg ...string) ([]byte, error)
}

// LookPath implements the CommandExecutor interface for testing.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	// By default, assume commands exist
	return "/path/to/" + file, nil
}

// CombinedOutput implements the CommandExecutor interface for testing.
// It records the command that would be executed.
func (m *MockCommandExecutor) CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error) {
	cmdStr := name
	if len(arg) > 0 {
		cmdStr = name + " " + strings.Join(arg, " ")
	}
	m.Commands = append(m.Commands, cmdStr)
	m.Dirs = append(m.Dirs, dir)

	if m.OutputFunc != nil {
		return m.OutputFunc(dir, name, arg...)
	}
	return nil, nil
}
