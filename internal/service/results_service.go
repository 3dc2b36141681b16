package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resultsgen/internal/config"
	"resultsgen/internal/domain"
	"resultsgen/internal/namemap"
	"resultsgen/internal/port"
	"resultsgen/internal/report"
	"resultsgen/internal/tally"
)

// ResultsService turns one results spreadsheet into one region report.
type ResultsService interface {
	Run(ctx context.Context, input RunInput) (*domain.RunSummary, error)
}

// RunInput carries the per-invocation parameters.
type RunInput struct {
	Path string
	// DryRun computes the report without writing anything.
	DryRun bool
}

type resultsService struct {
	loader  port.EntryLoader
	names   *namemap.NameMap
	report  config.ReportConfig
	writers []port.ReportWriter
	logger  *zap.Logger
}

// NewResultsService creates a new ResultsService implementation. Writers run
// in order; the first is expected to produce the primary JSON report.
func NewResultsService(
	loader port.EntryLoader,
	names *namemap.NameMap,
	reportCfg config.ReportConfig,
	writers []port.ReportWriter,
	logger *zap.Logger,
) ResultsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resultsService{
		loader:  loader,
		names:   names,
		report:  reportCfg,
		writers: writers,
		logger:  logger,
	}
}

// trackingResolver records every display name that missed the table.
type trackingResolver struct {
	names    *namemap.NameMap
	unmapped []string
}

func (r *trackingResolver) Resolve(displayName string) string {
	id, mapped := r.names.ResolveMapped(displayName)
	if !mapped {
		r.unmapped = append(r.unmapped, displayName)
	}
	return id
}

func (s *resultsService) Run(ctx context.Context, input RunInput) (*domain.RunSummary, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))

	log.Info("loading results", zap.String("input", input.Path))
	entries, err := s.loader.Load(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	log.Info("loaded results", zap.Int("rows", len(entries)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolver := &trackingResolver{names: s.names}
	total, results, err := tally.Aggregate(entries, resolver)
	if err != nil {
		return nil, fmt.Errorf("derive stage: %w", err)
	}
	for _, name := range resolver.unmapped {
		log.Warn("party name not in name map, using fallback id",
			zap.String("name", name),
			zap.String("party_id", namemap.Slugify(name)),
		)
	}
	warnDuplicateIDs(log, results)

	ranked := tally.Rank(results)
	regionReport := report.Build(total, ranked, s.report)
	log.Info("computed report",
		zap.String("region_id", regionReport.RegionID),
		zap.String("election_id", regionReport.ElectionID),
		zap.Int64("total_votes", total),
		zap.Int("parties", len(ranked)),
	)

	summary := &domain.RunSummary{
		RunID:    runID,
		Rows:     len(entries),
		Unmapped: resolver.unmapped,
		DryRun:   input.DryRun,
		Report:   regionReport,
	}
	if input.DryRun {
		log.Info("dry run, no files written")
		return summary, nil
	}

	if err := s.emit(ctx, log, regionReport, summary); err != nil {
		return nil, fmt.Errorf("emit stage: %w", err)
	}
	return summary, nil
}

// emit prepares every output before committing any, so a failed render or
// cancellation leaves all destinations untouched.
func (s *resultsService) emit(ctx context.Context, log *zap.Logger, regionReport *domain.RegionReport, summary *domain.RunSummary) error {
	pending := make([]port.PendingWrite, 0, len(s.writers))
	for _, w := range s.writers {
		p, err := w.Prepare(ctx, regionReport)
		if err != nil {
			discardAll(log, pending)
			return err
		}
		pending = append(pending, p)
	}

	if err := ctx.Err(); err != nil {
		discardAll(log, pending)
		return err
	}

	for i, p := range pending {
		if err := p.Commit(); err != nil {
			discardAll(log, pending[i+1:])
			return &domain.WriteError{Path: p.Path(), Err: err}
		}
		summary.Written = append(summary.Written, p.Path())
		log.Info("wrote report", zap.String("output", p.Path()))
	}
	return nil
}

func discardAll(log *zap.Logger, pending []port.PendingWrite) {
	for _, p := range pending {
		if err := p.Discard(); err != nil {
			log.Warn("failed to remove staged output", zap.String("output", p.Path()), zap.Error(err))
		}
	}
}

// warnDuplicateIDs logs party ids produced by more than one input row.
// The rows are kept as they are.
func warnDuplicateIDs(log *zap.Logger, results []domain.PartyResult) {
	seen := make(map[string]int, len(results))
	for _, r := range results {
		seen[r.PartyID]++
		if seen[r.PartyID] == 2 {
			log.Warn("party id appears on more than one row", zap.String("party_id", r.PartyID))
		}
	}
}
