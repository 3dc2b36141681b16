package loader

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"resultsgen/internal/domain"
	"resultsgen/internal/port"
)

// Options configures how a tabular source is read.
type Options struct {
	// Sheet selects a worksheet in workbook formats. Empty means the first.
	Sheet string
	// Header controls whether the first non-blank row is skipped.
	Header domain.HeaderMode
	// Logger receives a record of each skipped header row. Nil discards.
	Logger *zap.Logger
}

func (o Options) headerMode() domain.HeaderMode {
	if o.Header == "" {
		return domain.HeaderAuto
	}
	return o.Header
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Factory creates an EntryLoader for one input format.
type Factory func(opts Options) port.EntryLoader

// registry of loaders by input format.
var formats = map[domain.InputFormat]Factory{
	domain.InputFormatXLSX: func(opts Options) port.EntryLoader { return NewXLSXLoader(opts) },
	domain.InputFormatCSV:  func(opts Options) port.EntryLoader { return NewCSVLoader(opts) },
}

// RegisterFormat registers or replaces the loader for a format.
func RegisterFormat(format domain.InputFormat, factory Factory) {
	formats[format] = factory
}

// FormatOf returns the input format implied by the file extension of path.
func FormatOf(path string) (domain.InputFormat, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	format, ok := domain.AllowedExtensions[ext]
	return format, ok
}

// New returns the loader for path based on its extension.
func New(path string, opts Options) (port.EntryLoader, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, domain.NewLoadError(path, domain.ErrUnsupportedFormat)
	}
	factory, ok := formats[format]
	if !ok {
		return nil, domain.NewLoadError(path, domain.ErrUnsupportedFormat)
	}
	return factory(opts), nil
}
