package port

import (
	"context"

	"resultsgen/internal/domain"
)

// EntryLoader reads raw (name, votes) rows from a tabular source.
type EntryLoader interface {
	Load(ctx context.Context, path string) ([]domain.RawEntry, error)
}
