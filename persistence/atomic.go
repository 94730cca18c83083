package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes the bytes produced by write to path via a temp file
// in the same directory followed by a rename, so that a reader never
// observes a partially-written file and a failed write never clobbers a
// prior good file (spec: save must either produce a complete file or fail
// without overwriting a prior good file).
func AtomicWriteFile(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persistence: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("persistence: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("persistence: sync %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persistence: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("persistence: rename into place %s: %w", path, err)
	}

	success = true

	if d, derr := os.Open(dir); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
