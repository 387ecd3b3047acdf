// Package writer persists rendered output atomically. Content is written to
// a temporary file in the destination directory and renamed over the
// destination, so no observer ever sees partial file content.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConflictError reports two template mappings targeting the same
// destination path within one run.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("destination %s is targeted by more than one template", e.Path)
}

// Tracker records destination paths claimed during a run so conflicting
// writes surface before any content is produced for them.
type Tracker struct {
	seen map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]bool)}
}

// Claim registers a destination path. Claiming a path twice within one run
// is a ConflictError.
func (t *Tracker) Claim(path string) error {
	clean := filepath.Clean(path)
	if t.seen[clean] {
		return &ConflictError{Path: clean}
	}
	t.seen[clean] = true
	return nil
}

// Write persists data at path, creating parent directories as needed.
// Either the full content lands at the destination or the destination is
// left unchanged. Existing files are overwritten without confirmation.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// The temp file must live in the destination directory: rename is only
	// atomic within a filesystem.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
