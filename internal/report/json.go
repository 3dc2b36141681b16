package report

import (
	"encoding/json"
	"fmt"
	"io"

	"resultsgen/internal/domain"
)

// Encode writes reports as an indented JSON array. Non-ASCII text is written
// literally and HTML characters are not escaped.
func Encode(w io.Writer, reports []domain.RegionReport) error {
	if reports == nil {
		reports = []domain.RegionReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// Decode parses a JSON array of region reports.
func Decode(r io.Reader) ([]domain.RegionReport, error) {
	var reports []domain.RegionReport
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reports); err != nil {
		return nil, fmt.Errorf("decode region reports: %w", err)
	}
	return reports, nil
}
