package port

import (
	"context"

	"resultsgen/internal/domain"
)

// ReportWriter renders a finished region report for one destination.
// Prepare writes the full output aside; nothing at the destination changes
// until the returned PendingWrite is committed.
type ReportWriter interface {
	Prepare(ctx context.Context, report *domain.RegionReport) (PendingWrite, error)
}

// PendingWrite is a rendered output waiting to replace its destination.
type PendingWrite interface {
	Path() string
	// Commit replaces any existing content at Path.
	Commit() error
	// Discard drops the output. It is a no-op after a successful Commit.
	Discard() error
}
