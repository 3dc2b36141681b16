package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"resultsgen/internal/domain"
)

func TestLoadError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *domain.LoadError
		expected string
	}{
		{
			"cell",
			&domain.LoadError{Path: "in.xlsx", Row: 4, Column: 2, Err: domain.ErrInvalidVotes},
			"load in.xlsx: row 4, column 2: vote count is not an integer",
		},
		{
			"row",
			&domain.LoadError{Path: "in.csv", Row: 3, Err: domain.ErrMissingColumn},
			"load in.csv: row 3: row has fewer than two columns",
		},
		{
			"file",
			domain.NewLoadError("in.ods", domain.ErrUnsupportedFormat),
			"load in.ods: unsupported input format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	err := fmt.Errorf("loading: %w", &domain.LoadError{Path: "x", Row: 1, Column: 2, Err: domain.ErrNegativeVotes})

	var loadErr *domain.LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 1, loadErr.Row)
	assert.True(t, errors.Is(err, domain.ErrNegativeVotes))
}

func TestWriteError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &domain.WriteError{Path: "out.json", Err: inner}

	assert.Equal(t, "write out.json: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestHeaderMode_Valid(t *testing.T) {
	assert.True(t, domain.HeaderAuto.Valid())
	assert.True(t, domain.HeaderAlways.Valid())
	assert.True(t, domain.HeaderNever.Valid())
	assert.False(t, domain.HeaderMode("sometimes").Valid())
}
