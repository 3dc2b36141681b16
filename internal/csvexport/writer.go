package csvexport

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"resultsgen/internal/domain"
	"resultsgen/internal/port"
	"resultsgen/internal/report"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Rank",
	"Party ID",
	"Votes",
	"Percentage",
}

// Writer wraps csv.Writer for exporting ranked party results.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteParties writes one row per party. Parties are expected in rank order;
// equal vote counts share a rank.
func (w *Writer) WriteParties(parties []domain.PartyResult) error {
	rank := 0
	for i := range parties {
		if i == 0 || parties[i].Votes != parties[i-1].Votes {
			rank = i + 1
		}
		if err := w.csv.Write(partyToRow(rank, &parties[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func partyToRow(rank int, p *domain.PartyResult) []string {
	return []string{
		strconv.Itoa(rank),
		p.PartyID,
		strconv.FormatInt(p.Votes, 10),
		formatPercent(p.Percentage),
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FileWriter writes the ranked table of a report to a CSV file with a BOM.
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Prepare implements port.ReportWriter.
func (f *FileWriter) Prepare(ctx context.Context, r *domain.RegionReport) (port.PendingWrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	staged, err := report.Stage(f.path, func(out io.Writer) error {
		if _, err := out.Write(BOM); err != nil {
			return err
		}
		w := NewWriter(out)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		if err := w.WriteParties(r.Parties); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return nil, &domain.WriteError{Path: f.path, Err: err}
	}
	return staged, nil
}
