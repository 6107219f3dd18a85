package simulator

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// The working directory is process-wide, so scopes are serialized.
var dirMu sync.Mutex

// EnterDir makes dir the working directory of the process until the
// returned restore func is called. Only one scope is open at a time;
// EnterDir blocks while another one is.
func EnterDir(dir string) (restore func() error, err error) {
	dirMu.Lock()
	prev, err := os.Getwd()
	if err != nil {
		dirMu.Unlock()
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		dirMu.Unlock()
		return nil, err
	}
	if err := os.Chdir(abs); err != nil {
		dirMu.Unlock()
		return nil, err
	}

	var once sync.Once
	return func() error {
		var rerr error
		once.Do(func() {
			defer dirMu.Unlock()
			if err := os.Chdir(prev); err != nil {
				rerr = fmt.Errorf("restoring working directory %q: %w", prev, err)
			}
		})
		return rerr
	}, nil
}
