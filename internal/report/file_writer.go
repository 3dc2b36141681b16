package report

import (
	"context"
	"io"

	"resultsgen/internal/domain"
	"resultsgen/internal/port"
)

// FileWriter writes the region report JSON to a file, replacing any
// existing content.
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Prepare implements port.ReportWriter. The file holds a one-element array.
func (w *FileWriter) Prepare(ctx context.Context, report *domain.RegionReport) (port.PendingWrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	staged, err := Stage(w.path, func(out io.Writer) error {
		return Encode(out, []domain.RegionReport{*report})
	})
	if err != nil {
		return nil, &domain.WriteError{Path: w.path, Err: err}
	}
	return staged, nil
}
