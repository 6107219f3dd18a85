package controlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattsolo1/ngsphy-seqgen/pkg/genetree"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/logging"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/outcome"
	"github.com/sirupsen/logrus"
)

// Default labels written into generated control files.
const (
	DefaultTreeLabel      = "ngsphytree"
	DefaultPartitionLabel = "ngsphypartition"
	DefaultReplicates     = 1
	DefaultDataPrefix     = "ngsphydata_1"
)

// Document is a control file held as lines.
type Document struct {
	Lines []string
}

// WriteTo writes the document to w with a newline after every line.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range d.Lines {
		m, err := bw.WriteString(line + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes the document to path.
func (d *Document) WriteFile(path string) (err error) {
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

	if _, err := d.WriteTo(f); err != nil {
		return fmt.Errorf("while writing to %q: %w", path, err)
	}
	return nil
}

// Builder merges a template and a gene tree into a control file.
type Builder struct {
	TreeLabel      string
	PartitionLabel string
	Replicates     int
	DataPrefix     string

	// ValidateTree parses the gene tree as Newick before using it.
	ValidateTree bool

	log *logrus.Entry
}

// NewBuilder returns a builder using the default labels.
func NewBuilder() *Builder {
	return &Builder{
		TreeLabel:      DefaultTreeLabel,
		PartitionLabel: DefaultPartitionLabel,
		Replicates:     DefaultReplicates,
		DataPrefix:     DefaultDataPrefix,
		log:            logging.NewLogger("seqgen.controlfile"),
	}
}

type stage int

const (
	copyingTemplate stage = iota
	generating
	normalizing
	done
)

// Assemble builds the control file document for tpl and the normalized
// gene tree.
func (b *Builder) Assemble(tpl *Template, tree string) *Document {
	doc := &Document{}
	for st := copyingTemplate; st != done; st++ {
		switch st {
		case copyingTemplate:
			doc.Lines = append(doc.Lines, tpl.Lines[:tpl.Cutoff]...)
		case generating:
			doc.Lines = append(doc.Lines, b.generated(tpl, tree)...)
		case normalizing:
			doc.Lines = Normalize(doc.Lines)
		}
	}
	return doc
}

func (b *Builder) generated(tpl *Template, tree string) []string {
	return []string{
		fmt.Sprintf("%s %s %s", TreeDirective, b.TreeLabel, tree),
		fmt.Sprintf("%s %s [%s %s %s]", PartitionsDirective, b.PartitionLabel, b.TreeLabel, tpl.Model, tpl.Length()),
		EvolveHeader,
		fmt.Sprintf(" %s %d %s", b.PartitionLabel, b.Replicates, b.DataPrefix),
	}
}

// Normalize makes sure lines hold a [SETTINGS] header and FASTA output
// directives. Missing ones are inserted right after the header; existing
// lines keep their order.
func Normalize(lines []string) []string {
	settingsAt := -1
	var outputs []string
	extensions := 0
	for i, line := range lines {
		switch Classify(line) {
		case Settings:
			if settingsAt < 0 {
				settingsAt = i
			}
		case Output:
			fields := strings.Fields(line)
			if len(fields) > 1 {
				outputs = append(outputs, strings.ToUpper(fields[1]))
			}
		case FastaExtension:
			extensions++
		}
	}

	if settingsAt < 0 {
		settingsAt = min(1, len(lines))
		lines = insertAt(lines, settingsAt, SettingsHeader)
	}

	var missing []string
	if !contains(outputs, fastaOutputValue) {
		missing = append(missing, fastaOutputLine)
	}
	if extensions == 0 {
		missing = append(missing, fastaExtensionLine)
	}
	return insertAt(lines, settingsAt+1, missing...)
}

func insertAt(lines []string, at int, add ...string) []string {
	if len(add) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	return append(out, lines[at:]...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Build writes the control file for templatePath and geneTreePath to
// outputPath.
func (b *Builder) Build(templatePath, geneTreePath, outputPath string) outcome.Outcome {
	log := b.logger().WithFields(logrus.Fields{
		"template":  templatePath,
		"gene_tree": geneTreePath,
		"output":    outputPath,
	})
	log.Debug("Writing new control file")

	f, err := os.Open(templatePath)
	if err != nil {
		return outcome.IOFailure(err, "reading the INDELible control file")
	}
	tpl, err := ParseTemplate(f)
	f.Close()
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return outcome.TemplateFailure(err, "parsing the INDELible control file")
		}
		return outcome.IOFailure(err, "parsing the INDELible control file")
	}

	tree, err := genetree.ReadFile(geneTreePath)
	if err != nil {
		return outcome.IOFailure(err, "reading the gene tree file")
	}
	if b.ValidateTree {
		info, err := genetree.Validate(b.TreeLabel, tree)
		if err != nil {
			return outcome.IOFailure(err, "validating the gene tree")
		}
		log.WithField("terminals", len(info.Terms)).Debug("Gene tree validated")
	}

	doc := b.Assemble(tpl, tree)
	if err := doc.WriteFile(outputPath); err != nil {
		return outcome.IOFailure(err, "writing the INDELible control file")
	}
	log.WithField("lines", len(doc.Lines)).Info("Control file written")
	return outcome.Success("Control file written: " + outputPath)
}

func (b *Builder) logger() *logrus.Entry {
	if b.log == nil {
		b.log = logging.NewLogger("seqgen.controlfile")
	}
	return b.log
}
