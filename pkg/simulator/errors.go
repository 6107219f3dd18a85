package simulator

import (
	"fmt"
	"strings"
)

// FatalKind tells which step of a launch failed.
type FatalKind int

const (
	// ChdirFailed means the alignments folder could not be entered.
	ChdirFailed FatalKind = iota + 1
	// ExitFailed means the simulator exited with a non-zero status.
	ExitFailed
)

func (k FatalKind) String() string {
	switch k {
	case ChdirFailed:
		return "chdir"
	case ExitFailed:
		return "exit"
	}
	return "unknown"
}

const rule = "------------------------------------------------------------------------"

// FatalError aborts a simulator launch. Run converts it into a failed
// outcome; it never crosses that boundary.
type FatalError struct {
	Kind        FatalKind
	Tool        string
	Dir         string
	Binary      string
	ControlFile string
	ExitCode    int
	Output      string
	Err         error
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Hint is the command line that reproduces the failure by hand.
func (e *FatalError) Hint() string {
	return fmt.Sprintf("cd %s; %s %s", e.Dir, e.Binary, e.ControlFile)
}

func (e *FatalError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case ChdirFailed:
		fmt.Fprintf(&b, "\n\t%v\n\t%s\n\t%s",
			e.Err,
			"There has been a problem while moving into the alignments folder ("+e.Dir+").",
			"Please verify that the folder exists and is accessible. Exiting.",
		)
	default:
		fmt.Fprintf(&b, "\n%s execution error. (exit status %d)\n%s\n%v\n%s\n%s\n%s\n",
			e.Tool, e.ExitCode, rule, e.Err, rule, strings.TrimRight(e.Output, "\n"), rule)
		b.WriteString("For more information about this error please run the following command:\n\n")
		fmt.Fprintf(&b, "\t%s\n", e.Hint())
	}
	return b.String()
}
