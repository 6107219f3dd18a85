package sequence

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputLogName is the file the simulator console output is saved to.
const OutputLogName = "indelible.log"

// OutputLogPath returns the path of the saved simulator output of the
// alignments folder. The folder is created if it doesn't exist.
func OutputLogPath(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("alignments folder cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create alignments folder: %w", err)
	}
	return filepath.Join(dir, OutputLogName), nil
}

// saveOutput writes the captured simulator output next to the control file.
func saveOutput(dir, output string) (string, error) {
	path, err := OutputLogPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return "", fmt.Errorf("failed to save simulator output: %w", err)
	}
	return path, nil
}
