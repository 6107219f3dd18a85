package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yml")
	content := `project_name: primates
output_folder: /data/primates
indelible_control_file: control.template.txt
gene_tree_file: g_trees1.trees
running_times: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "primates", s.ProjectName)
	assert.Equal(t, "indelible", s.ProgramCommand)
	assert.True(t, s.RunningTimes)
	assert.False(t, s.ValidateGeneTree)
	assert.Equal(t, filepath.Join("/data/primates", "alignments", "1"), s.AlignmentsDir())
	assert.Equal(t, filepath.Join("/data/primates", "alignments", "1", "control.txt"), s.ControlFilePath())
	assert.Equal(t, filepath.Join("/data/primates", ".ngsphy"), s.StateDir())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("project_name: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse settings file")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "control.template.txt")
	require.NoError(t, os.WriteFile(tpl, []byte("[TYPE] NUCLEOTIDE 1\n"), 0644))

	s := Default()
	s.IndelibleControlFile = tpl
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gene_tree_file is not set")

	s.GeneTreeFile = filepath.Join(dir, "missing.trees")
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gene_tree_file")

	s.GeneTreeFile = tpl
	assert.NoError(t, s.Validate())
}
