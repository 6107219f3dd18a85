// Package outcome holds the success flag and message returned by every
// pipeline step.
package outcome

import "fmt"

// Outcome is the result of a pipeline step. Failure messages are
// multi-line diagnostics meant to be shown to the user as they are.
type Outcome struct {
	OK      bool
	Message string
}

// Success returns a successful outcome with the given message.
func Success(msg string) Outcome {
	return Outcome{OK: true, Message: msg}
}

// Failure returns a failed outcome with the given message.
func Failure(msg string) Outcome {
	return Outcome{OK: false, Message: msg}
}

// IOFailure builds the diagnostic used for file I/O problems. stage names
// what was being done, e.g. "reading the gene tree file".
func IOFailure(err error, stage string) Outcome {
	return diagnostic("I/O problem.", err, stage)
}

// TemplateFailure builds the diagnostic for a control file template that
// is missing or misusing a directive.
func TemplateFailure(err error, stage string) Outcome {
	return diagnostic("Control file template problem.", err, stage)
}

func diagnostic(problem string, err error, stage string) Outcome {
	return Failure(fmt.Sprintf("\n\t%s\n\t%v\n\t%s\n\t%s\n",
		problem,
		err,
		"Stopped while "+stage+".",
		"Please verify and rerun. Exiting.",
	))
}

// Err converts a failed outcome into an error, nil on success.
func (o Outcome) Err() error {
	if o.OK {
		return nil
	}
	return fmt.Errorf("%s", o.Message)
}
