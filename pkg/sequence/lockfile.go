package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const lockName = ".seqgen.lock"

// lockFileName returns the path of the lock file guarding an alignments folder.
func lockFileName(dir string) string {
	return filepath.Join(dir, lockName)
}

// CreateLockFile creates the lock file of dir, writing the process ID to it.
// It fails if the folder is already locked.
func CreateLockFile(dir string, pid int) error {
	f, err := os.OpenFile(lockFileName(dir), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			held, _ := ReadLockFile(dir)
			return fmt.Errorf("alignments folder %s is in use by process %d; remove %s if that run is gone", dir, held, lockFileName(dir))
		}
		return err
	}
	if _, err := f.WriteString(strconv.Itoa(pid)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RemoveLockFile deletes the lock file of dir.
func RemoveLockFile(dir string) error {
	// It's not an error if the file doesn't exist.
	err := os.Remove(lockFileName(dir))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ReadLockFile reads the PID from the lock file of dir.
func ReadLockFile(dir string) (int, error) {
	content, err := os.ReadFile(lockFileName(dir))
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in lock file: %w", err)
	}
	return pid, nil
}
