package controlfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bareTemplate = `[TYPE] NUCLEOTIDE 1
[MODEL] GTR_model
  [submodel] GTR 0.2 0.4 0.6 0.8 1.2
  [statefreq] 0.25 0.25 0.25 0.25
[NGSPHYPARTITION] ngsphytree GTR_model 1000
[NGSPHYEVOLVE] 1 data
`

const fastaTemplate = `[TYPE] NUCLEOTIDE 1
[SETTINGS]
  [output] FASTA
  [fastaextension] fasta
  [randomseed] 2478
[MODEL] GTR_model
  [submodel] GTR 0.2 0.4 0.6 0.8 1.2
[NGSPHYPARTITION] ngsphytree GTR_model 500
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func countTrimmedPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), prefix) {
			n++
		}
	}
	return n
}

func indexOfTrimmed(lines []string, prefix string) int {
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), prefix) {
			return i
		}
	}
	return -1
}

func TestAssembleBareTemplate(t *testing.T) {
	tpl, err := ParseTemplate(strings.NewReader(bareTemplate))
	require.NoError(t, err)

	doc := NewBuilder().Assemble(tpl, "(A:1,B:1);")

	expected := []string{
		"[TYPE] NUCLEOTIDE 1",
		"[SETTINGS]",
		"  [output] FASTA",
		"  [fastaextension] fasta",
		"[MODEL] GTR_model",
		"  [submodel] GTR 0.2 0.4 0.6 0.8 1.2",
		"  [statefreq] 0.25 0.25 0.25 0.25",
		"[TREE] ngsphytree (A:1,B:1);",
		"[PARTITIONS] ngsphypartition [ngsphytree GTR_model 1000]",
		"[EVOLVE]",
		" ngsphypartition 1 ngsphydata_1",
	}
	assert.Equal(t, expected, doc.Lines)
}

func TestAssembleAddsMandatoryDirectivesOnce(t *testing.T) {
	tpl, err := ParseTemplate(strings.NewReader(bareTemplate))
	require.NoError(t, err)
	doc := NewBuilder().Assemble(tpl, "(A,B);")

	for _, d := range []string{SettingsHeader, OutputDirective, FastaExtDirective, TreeDirective, PartitionsDirective, EvolveHeader} {
		assert.Equal(t, 1, countTrimmedPrefix(doc.Lines, d), d)
	}
	assert.Less(t, indexOfTrimmed(doc.Lines, SettingsHeader), indexOfTrimmed(doc.Lines, OutputDirective))
	assert.Less(t, indexOfTrimmed(doc.Lines, SettingsHeader), indexOfTrimmed(doc.Lines, FastaExtDirective))
}

func TestAssembleKeepsExistingOutputDirectives(t *testing.T) {
	tpl, err := ParseTemplate(strings.NewReader(fastaTemplate))
	require.NoError(t, err)

	doc := NewBuilder().Assemble(tpl, "(A,B);")
	assert.Equal(t, tpl.Lines[:tpl.Cutoff], doc.Lines[:tpl.Cutoff])
	assert.Equal(t, 1, countTrimmedPrefix(doc.Lines, SettingsHeader))
	assert.Equal(t, 1, countTrimmedPrefix(doc.Lines, OutputDirective))
	assert.Equal(t, 1, countTrimmedPrefix(doc.Lines, FastaExtDirective))
}

func TestNormalizeInsertsOnlyWhatIsMissing(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "missing extension",
			lines: []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] fasta", "[EVOLVE]"},
			want:  []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [fastaextension] fasta", "  [output] fasta", "[EVOLVE]"},
		},
		{
			name:  "missing output",
			lines: []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [fastaextension] fas", "[EVOLVE]"},
			want:  []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] FASTA", "  [fastaextension] fas", "[EVOLVE]"},
		},
		{
			name:  "other output format",
			lines: []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] PHYLIP"},
			want:  []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] FASTA", "  [fastaextension] fasta", "  [output] PHYLIP"},
		},
		{
			name:  "settings further down",
			lines: []string{"[TYPE] NUCLEOTIDE 1", "[MODEL] m", "[SETTINGS]", "[EVOLVE]"},
			want:  []string{"[TYPE] NUCLEOTIDE 1", "[MODEL] m", "[SETTINGS]", "  [output] FASTA", "  [fastaextension] fasta", "[EVOLVE]"},
		},
		{
			name:  "complete",
			lines: []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] FASTA", "  [fastaextension] fasta"},
			want:  []string{"[TYPE] NUCLEOTIDE 1", "[SETTINGS]", "  [output] FASTA", "  [fastaextension] fasta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.lines))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	lines := []string{"[TYPE] NUCLEOTIDE 1", "[TREE] t (A,B);"}
	once := Normalize(lines)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestBuildWritesControlFile(t *testing.T) {
	dir := t.TempDir()
	tplPath := writeFixture(t, dir, "control.template.txt", bareTemplate)
	treePath := writeFixture(t, dir, "gene.tree", "\"(A,B);\"\n\n")
	outPath := filepath.Join(dir, "control.txt")

	b := NewBuilder()
	res := b.Build(tplPath, treePath, outPath)
	require.True(t, res.OK, res.Message)

	lines := readLines(t, outPath)
	assert.Contains(t, lines, "[TREE] ngsphytree (A,B);")

	tpl, err := ParseTemplate(strings.NewReader(bareTemplate))
	require.NoError(t, err)
	doc := b.Assemble(tpl, "(A,B);")
	assert.Equal(t, doc.Lines, lines)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, len(doc.Lines), strings.Count(string(raw), "\n"))
}

func TestBuildTwiceDoesNotDuplicate(t *testing.T) {
	dir := t.TempDir()
	tplPath := writeFixture(t, dir, "control.template.txt", fastaTemplate)
	treePath := writeFixture(t, dir, "gene.tree", "(A,B)\n")
	outPath := filepath.Join(dir, "control.txt")

	b := NewBuilder()
	require.True(t, b.Build(tplPath, treePath, outPath).OK)
	first := readLines(t, outPath)
	require.True(t, b.Build(tplPath, treePath, outPath).OK)
	second := readLines(t, outPath)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countTrimmedPrefix(second, OutputDirective))
	assert.Equal(t, 1, countTrimmedPrefix(second, FastaExtDirective))
	assert.Contains(t, second, "[TREE] ngsphytree (A,B);")
}

func TestBuildFailures(t *testing.T) {
	dir := t.TempDir()
	tplPath := writeFixture(t, dir, "control.template.txt", bareTemplate)
	treePath := writeFixture(t, dir, "gene.tree", "(A,B);\n")
	noPartition := writeFixture(t, dir, "nopartition.txt", "[MODEL] m\n[SETTINGS]\n")

	b := NewBuilder()

	res := b.Build(filepath.Join(dir, "missing.txt"), treePath, filepath.Join(dir, "out.txt"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "I/O problem.")
	assert.Contains(t, res.Message, "missing.txt")

	res = b.Build(tplPath, filepath.Join(dir, "missing.tree"), filepath.Join(dir, "out.txt"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "gene tree")

	res = b.Build(noPartition, treePath, filepath.Join(dir, "out.txt"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, PartitionMarker)
	assert.Contains(t, res.Message, "Control file template problem.")
	assert.NotContains(t, res.Message, "I/O problem.")

	res = b.Build(tplPath, treePath, filepath.Join(dir, "no", "such", "dir", "control.txt"))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "writing the INDELible control file")
}

func TestBuildValidatesGeneTree(t *testing.T) {
	dir := t.TempDir()
	tplPath := writeFixture(t, dir, "control.template.txt", bareTemplate)
	goodTree := writeFixture(t, dir, "good.tree", "((A_0_0:1,B_0_0:1):1,C_0_0:2);\n")
	badTree := writeFixture(t, dir, "bad.tree", "geneA\n")
	outPath := filepath.Join(dir, "control.txt")

	b := NewBuilder()
	b.ValidateTree = true

	res := b.Build(tplPath, goodTree, outPath)
	require.True(t, res.OK, res.Message)
	assert.Contains(t, readLines(t, outPath), "[TREE] ngsphytree ((A_0_0:1,B_0_0:1):1,C_0_0:2);")

	badOut := filepath.Join(dir, "bad-control.txt")
	res = b.Build(tplPath, badTree, badOut)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "invalid gene tree")
	assert.Contains(t, res.Message, "Stopped while validating the gene tree.")
	_, err := os.Stat(badOut)
	assert.True(t, os.IsNotExist(err))

	b.ValidateTree = false
	assert.True(t, b.Build(tplPath, badTree, badOut).OK)
}

func TestBuildRejectsGeneratedDirectivesInTemplate(t *testing.T) {
	dir := t.TempDir()
	tplPath := writeFixture(t, dir, "control.template.txt", `[TYPE] NUCLEOTIDE 1
[MODEL] GTR_model
[TREE] mytree (A:1,B:1);
[EVOLVE]
  mypartition 1 out
[NGSPHYPARTITION] ngsphytree GTR_model 1000
`)
	treePath := writeFixture(t, dir, "gene.tree", "(A,B);\n")
	outPath := filepath.Join(dir, "control.txt")

	res := NewBuilder().Build(tplPath, treePath, outPath)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Control file template problem.")
	assert.Contains(t, res.Message, "line 3")
	assert.Contains(t, res.Message, TreeDirective)
	_, err := os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}
