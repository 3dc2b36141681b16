package loader

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"resultsgen/internal/domain"
)

const (
	nameColumn  = 1
	votesColumn = 2
)

// sourceRow is one record of the input with the 1-based line or sheet row it
// came from.
type sourceRow struct {
	num   int
	cells []string
}

// numberRows numbers rows consecutively from 1, as sheet rows are.
func numberRows(rows [][]string) []sourceRow {
	out := make([]sourceRow, len(rows))
	for i, cells := range rows {
		out[i] = sourceRow{num: i + 1, cells: cells}
	}
	return out
}

// toEntries converts source rows into entries. Blank rows are skipped. The
// first non-blank row may be dropped as a header according to mode.
func toEntries(ctx context.Context, path string, rows []sourceRow, mode domain.HeaderMode, logger *zap.Logger) ([]domain.RawEntry, error) {
	entries := make([]domain.RawEntry, 0, len(rows))
	first := true

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlank(row.cells) {
			continue
		}

		if first {
			first = false
			if isHeader(row.cells, mode) {
				logger.Info("skipping header row",
					zap.String("input", path),
					zap.Int("row", row.num),
					zap.Strings("cells", row.cells),
				)
				continue
			}
		}

		entry, err := toEntry(path, row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toEntry(path string, row sourceRow) (domain.RawEntry, error) {
	if len(row.cells) < votesColumn {
		return domain.RawEntry{}, &domain.LoadError{Path: path, Row: row.num, Err: domain.ErrMissingColumn}
	}

	name := strings.TrimSpace(row.cells[nameColumn-1])
	if name == "" {
		return domain.RawEntry{}, &domain.LoadError{Path: path, Row: row.num, Column: nameColumn, Err: domain.ErrEmptyName}
	}

	votes, err := ParseVotes(row.cells[votesColumn-1])
	if err != nil {
		return domain.RawEntry{}, &domain.LoadError{Path: path, Row: row.num, Column: votesColumn, Err: err}
	}

	return domain.RawEntry{DisplayName: name, Votes: votes, Row: row.num}, nil
}

// isHeader decides whether the first non-blank row is a header.
// In auto mode only a vote cell holding text without any digit, such as
// "Гласове", marks a header. A missing, blank or malformed number is data
// and fails in toEntry.
func isHeader(cells []string, mode domain.HeaderMode) bool {
	switch mode {
	case domain.HeaderAlways:
		return true
	case domain.HeaderNever:
		return false
	}
	if len(cells) < votesColumn {
		return false
	}
	cell := strings.TrimSpace(cells[votesColumn-1])
	if cell == "" || strings.IndexFunc(cell, unicode.IsDigit) >= 0 {
		return false
	}
	_, err := ParseVotes(cell)
	return errors.Is(err, domain.ErrInvalidVotes)
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
