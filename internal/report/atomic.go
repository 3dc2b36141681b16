package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// defaultFileMode applies when the destination does not exist yet.
const defaultFileMode os.FileMode = 0o644

// StagedFile is output written and synced to a temporary file in the
// destination's directory, waiting to be renamed over the destination.
type StagedFile struct {
	path    string
	tmpName string
	done    bool
}

// Stage writes the output of fn to a temporary file beside path. The file
// takes the permissions of an existing regular file at path, or 0644.
func Stage(path string, fn func(w io.Writer) error) (_ *StagedFile, err error) {
	mode := destinationMode(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = fn(tmp); err != nil {
		return nil, err
	}
	if err = tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return nil, fmt.Errorf("chmod temp file: %w", err)
	}
	return &StagedFile{path: path, tmpName: tmpName}, nil
}

func destinationMode(path string) os.FileMode {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return defaultFileMode
	}
	return fi.Mode().Perm()
}

// Path returns the destination path.
func (s *StagedFile) Path() string {
	return s.path
}

// Commit renames the staged file over the destination. On failure the
// temporary file is removed and the destination is left as it was.
func (s *StagedFile) Commit() error {
	if s.done {
		return nil
	}
	if err := os.Rename(s.tmpName, s.path); err != nil {
		_ = os.Remove(s.tmpName)
		s.done = true
		return fmt.Errorf("rename into place: %w", err)
	}
	s.done = true
	return nil
}

// Discard removes the staged file unless it was already committed.
func (s *StagedFile) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := os.Remove(s.tmpName); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}
