package controlfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// lengthToken is the index of the sequence length in the partition tuple.
const lengthToken = 3

// ParseError reports a template that lacks a directive the build needs.
type ParseError struct {
	Line int // 1-based, 0 when the directive is missing altogether
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("control file template line %d: %s", e.Line, e.Msg)
	}
	return "control file template: " + e.Msg
}

// Template is a user control file with the values the build extracts
// from it.
type Template struct {
	Lines []string

	// Partition is the whitespace split of the first partition line.
	Partition []string
	// Model is the name from the first [MODEL] line.
	Model string
	// Cutoff is the index of the first line starting the NGSphy section,
	// or len(Lines) if there is none.
	Cutoff int
}

// Length returns the sequence length parameter of the partition directive.
func (t *Template) Length() string {
	return t.Partition[lengthToken]
}

// ParseTemplate reads a template. For both the partition and the model
// directives the first occurrence wins.
func ParseTemplate(r io.Reader) (*Template, error) {
	t := &Template{Cutoff: -1}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var partitionLine, modelLine, generatedLine int
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		t.Lines = append(t.Lines, line)
		n := len(t.Lines)

		if t.Cutoff < 0 && EndsTemplate(line) {
			t.Cutoff = n - 1
		}
		if t.Cutoff < 0 && generatedLine == 0 && isGenerated(line) {
			generatedLine = n
		}
		if partitionLine == 0 && strings.Contains(line, PartitionMarker) {
			t.Partition = strings.Fields(line)
			partitionLine = n
		}
		if modelLine == 0 && strings.Contains(line, ModelMarker) {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, &ParseError{Line: n, Msg: "[MODEL] directive has no model name"}
			}
			t.Model = fields[1]
			modelLine = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading control file template: %w", err)
	}
	if t.Cutoff < 0 {
		t.Cutoff = len(t.Lines)
	}

	if partitionLine == 0 {
		return nil, &ParseError{Msg: "no " + PartitionMarker + " directive found"}
	}
	if len(t.Partition) <= lengthToken {
		return nil, &ParseError{
			Line: partitionLine,
			Msg:  fmt.Sprintf("%s directive needs %d fields, found %d", PartitionMarker, lengthToken+1, len(t.Partition)),
		}
	}
	if generatedLine > 0 {
		directive := strings.Fields(t.Lines[generatedLine-1])[0]
		return nil, &ParseError{
			Line: generatedLine,
			Msg:  directive + " is written by the build and must not appear before the " + NamespacePrefix + " section",
		}
	}
	return t, nil
}

// isGenerated reports whether line opens one of the directives Assemble
// appends after the cut-off.
func isGenerated(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case TreeDirective, PartitionsDirective, EvolveHeader:
		return true
	}
	return false
}
