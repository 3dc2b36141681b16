package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVotes      = errors.New("vote count is not an integer")
	ErrNegativeVotes     = errors.New("vote count is negative")
	ErrMissingColumn     = errors.New("row has fewer than two columns")
	ErrEmptyName         = errors.New("party name is empty")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrEmptyNameMapEntry = errors.New("name map entry has an empty name or party id")
)

// LoadError reports a failure to read or parse the input source.
// Row and Column are 1-based; zero means the failure is not tied to a cell.
type LoadError struct {
	Path   string
	Row    int
	Column int
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column > 0:
		return fmt.Sprintf("load %s: row %d, column %d: %v", e.Path, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load %s: row %d: %v", e.Path, e.Row, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a LoadError that is not tied to a specific cell.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// WriteError reports a failure to create or write an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
