// Package genetree reads the gene tree handed to INDELible.
package genetree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/timetree"
)

// Terminator ends a Newick tree.
const Terminator = ";"

// ErrEmpty is returned when a gene tree file has no tree in it.
var ErrEmpty = errors.New("gene tree file is empty")

// Read returns the gene tree in r as a single Newick string: blank lines are
// dropped, the rest are trimmed and joined without separator, quote
// characters are removed and a terminator is added when missing.
func Read(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading gene tree: %w", err)
	}
	return Normalize(b.String())
}

// Normalize strips quote characters from tree and makes sure it ends with
// exactly the terminator it already had, or a new one.
func Normalize(tree string) (string, error) {
	tree = strings.NewReplacer("'", "", `"`, "").Replace(tree)
	if tree == "" {
		return "", ErrEmpty
	}
	if !strings.HasSuffix(tree, Terminator) {
		tree += Terminator
	}
	return tree, nil
}

// ReadFile reads and normalizes the gene tree stored at path.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	tree, err := Read(f)
	if err != nil {
		return "", fmt.Errorf("while reading file %q: %w", path, err)
	}
	return tree, nil
}

// Info describes a gene tree that parsed as a Newick tree.
type Info struct {
	// Name is the lowercased collection name given to Validate.
	Name string
	// Terms are the terminal names as timetree canonicalizes them
	// (underscores become spaces, sorted), so A_0_0 is reported as "A 0 0".
	// They are not the labels written into the control file and are only
	// used to count terminals.
	Terms []string
}

// Validate parses tree as a Newick tree with branch lengths and returns its
// terminals. The root age is taken from the longest root to tip path.
func Validate(name, tree string) (*Info, error) {
	c, err := timetree.Newick(strings.NewReader(tree), name, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid gene tree: %w", err)
	}
	names := c.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("invalid gene tree: no tree found")
	}
	t := c.Tree(names[0])
	if t == nil {
		return nil, fmt.Errorf("invalid gene tree: no tree found")
	}
	return &Info{Name: t.Name(), Terms: t.Terms()}, nil
}
