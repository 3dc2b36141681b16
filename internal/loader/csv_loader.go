package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"resultsgen/internal/domain"
)

// utf8BOM is stripped from the start of CSV input; spreadsheet exports
// (and our own csvexport) prepend it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader reads entries from a comma- or semicolon-separated file.
type CSVLoader struct {
	header domain.HeaderMode
	logger *zap.Logger
}

// NewCSVLoader creates a loader for .csv files.
func NewCSVLoader(opts Options) *CSVLoader {
	return &CSVLoader{header: opts.headerMode(), logger: opts.logger()}
}

// Load implements port.EntryLoader. Row numbers in errors are file lines.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]domain.RawEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := readCSV(f)
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &domain.LoadError{Path: path, Row: parseErr.StartLine, Column: parseErr.Column, Err: parseErr.Err}
		}
		return nil, domain.NewLoadError(path, err)
	}

	return toEntries(ctx, path, rows, l.header, l.logger)
}

func readCSV(r io.Reader) ([]sourceRow, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	firstLine, _ := br.Peek(br.Buffered())

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(firstLine)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []sourceRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, sourceRow{num: line, cells: record})
	}
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas outside quoted fields, as in exports from locales that use a
// decimal comma.
func sniffDelimiter(buf []byte) rune {
	var commas, semicolons int
	quoted := false
	for _, b := range buf {
		switch {
		case b == '"':
			quoted = !quoted
		case quoted:
			// separators inside quotes are field content
		case b == '\n':
			return pickDelimiter(commas, semicolons)
		case b == ',':
			commas++
		case b == ';':
			semicolons++
		}
	}
	return pickDelimiter(commas, semicolons)
}

func pickDelimiter(commas, semicolons int) rune {
	if semicolons > commas {
		return ';'
	}
	return ','
}
