// Package logging configures the process-wide logrus logger and hands out
// component loggers.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	mu   sync.Mutex
	base = newBase(os.Stderr)
)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(formatterFor(w))
	return l
}

// formatterFor picks a colored text formatter for terminals and JSON for
// everything else (files, pipes, CI logs).
func formatterFor(w io.Writer) logrus.Formatter {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return &logrus.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		}
	}
	return &logrus.JSONFormatter{}
}

// NewLogger returns a logger tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()
	return base.WithField("component", component)
}

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
	base.SetFormatter(formatterFor(w))
}

// SetLevel sets the level by name. Unknown names fall back to info and the
// parse error is returned.
func SetLevel(level string) error {
	mu.Lock()
	defer mu.Unlock()
	if level == "" {
		base.SetLevel(logrus.InfoLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		base.SetLevel(logrus.InfoLevel)
		return err
	}
	base.SetLevel(lvl)
	return nil
}
