package loader

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"resultsgen/internal/domain"
)

// XLSXLoader reads entries from an Excel workbook.
type XLSXLoader struct {
	sheet  string
	header domain.HeaderMode
	logger *zap.Logger
}

// NewXLSXLoader creates a loader for .xlsx files. An empty sheet selects the
// first sheet of the workbook.
func NewXLSXLoader(opts Options) *XLSXLoader {
	return &XLSXLoader{sheet: opts.Sheet, header: opts.headerMode(), logger: opts.logger()}
}

// Load implements port.EntryLoader.
func (l *XLSXLoader) Load(ctx context.Context, path string) ([]domain.RawEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.NewLoadError(path, fmt.Errorf("open workbook: %w", err))
	}
	defer func() { _ = f.Close() }()

	sheet, err := l.resolveSheet(f)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	// Raw values avoid number formats such as "#,##0" leaking into vote cells.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewLoadError(path, fmt.Errorf("read sheet %q: %w", sheet, err))
	}

	return toEntries(ctx, path, numberRows(rows), l.header, l.logger)
}

func (l *XLSXLoader) resolveSheet(f *excelize.File) (string, error) {
	if l.sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return sheets[0], nil
	}
	idx, err := f.GetSheetIndex(l.sheet)
	if err != nil {
		return "", fmt.Errorf("look up sheet %q: %w", l.sheet, err)
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found", l.sheet)
	}
	return l.sheet, nil
}
