// Package controlfile builds INDELible control files from a user template
// and a gene tree.
//
// Only the directives the NGSphy workflow depends on are recognized; every
// other line is carried over verbatim.
package controlfile

import "strings"

// Directive markers recognized in templates.
const (
	NamespacePrefix     = "[NGSPHY"
	PartitionMarker     = "[NGSPHYPARTITION]"
	ModelMarker         = "[MODEL]"
	SettingsHeader      = "[SETTINGS]"
	OutputDirective     = "[output]"
	FastaExtDirective   = "[fastaextension]"
	TreeDirective       = "[TREE]"
	PartitionsDirective = "[PARTITIONS]"
	EvolveHeader        = "[EVOLVE]"

	fastaOutputLine    = "  [output] FASTA"
	fastaExtensionLine = "  [fastaextension] fasta"
	fastaOutputValue   = "FASTA"
)

// Kind is the directive kind of a control file line.
type Kind int

const (
	Other Kind = iota
	// Partition lines contain the NGSphy partition marker anywhere.
	Partition
	// Namespace lines start (after trimming) with the NGSphy prefix.
	Namespace
	// Model lines contain the [MODEL] marker anywhere.
	Model
	Settings
	Output
	FastaExtension
)

func (k Kind) String() string {
	switch k {
	case Partition:
		return "partition"
	case Namespace:
		return "namespace"
	case Model:
		return "model"
	case Settings:
		return "settings"
	case Output:
		return "output"
	case FastaExtension:
		return "fastaextension"
	default:
		return "other"
	}
}

// Classify returns the kind of line. Rules are checked in order and the
// first match wins, so a partition line that also starts with the NGSphy
// prefix is a Partition.
func Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.Contains(line, PartitionMarker):
		return Partition
	case strings.HasPrefix(trimmed, NamespacePrefix):
		return Namespace
	case strings.Contains(line, ModelMarker):
		return Model
	case trimmed == SettingsHeader:
		return Settings
	case strings.HasPrefix(trimmed, OutputDirective):
		return Output
	case strings.HasPrefix(trimmed, FastaExtDirective):
		return FastaExtension
	}
	return Other
}

// EndsTemplate reports whether line starts the old NGSphy-specific section,
// after which template lines are no longer copied.
func EndsTemplate(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), NamespacePrefix)
}
