// Package timing extracts per-locus CPU times from INDELible console output.
package timing

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Marker identifies the lines INDELible prints when a block is done.
const Marker = "* Block"

// ReportHeader is the first line of a timing report.
const ReportHeader = "indexGT,cpuTime,outputFilePrefix"

// Record is the CPU time of one simulated locus.
type Record struct {
	Index        int
	CPUTime      string
	OutputPrefix string
}

// ParseError reports a block marker line without a CPU time.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("simulator output line %d: no cpu time in %q", e.Line, e.Text)
}

// Values returns the raw CPU time of every block marker line in output,
// in order. The value is the first token after the first colon.
func Values(output string) ([]string, error) {
	var values []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if !strings.Contains(line, Marker) {
			continue
		}
		_, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &ParseError{Line: n, Text: line}
		}
		rest, _, _ = strings.Cut(rest, ":")
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return nil, &ParseError{Line: n, Text: line}
		}
		values = append(values, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// Extract returns the timing records found in output. Records are numbered
// from 1 and record i carries the i-th collected value.
//
// Only len(values)-1 records are emitted: the last collected value never
// gets a record of its own. It is not known whether that value belongs to a
// trailing summary block or is a lost locus, so the emission is kept as is.
func Extract(output, dataPrefix string) ([]Record, error) {
	values, err := Values(output)
	if err != nil {
		return nil, err
	}
	var records []Record
	for i := 1; i < len(values); i++ {
		records = append(records, Record{
			Index:        i,
			CPUTime:      values[i-1],
			OutputPrefix: fmt.Sprintf("%s_%d", dataPrefix, i),
		})
	}
	return records, nil
}

// ReportPath returns the timing report path for a project.
func ReportPath(dir, project string) string {
	return filepath.Join(dir, project+".indelible.time")
}

// WriteReport writes records as comma separated rows after the header.
func WriteReport(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(ReportHeader + "\n"); err != nil {
		return err
	}
	for _, r := range records {
		row := strings.Join([]string{strconv.Itoa(r.Index), r.CPUTime, r.OutputPrefix}, ",")
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteReportFile writes the report to path.
func WriteReportFile(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := WriteReport(f, records); err != nil {
		return fmt.Errorf("while writing to %q: %w", path, err)
	}
	return nil
}
