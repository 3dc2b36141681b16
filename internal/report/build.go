// Package report assembles and serializes region reports.
package report

import (
	"resultsgen/internal/config"
	"resultsgen/internal/domain"
)

// Build assembles a RegionReport from ranked results and fixed settings.
// It performs no computation; parties must already be ranked.
func Build(totalVotes int64, parties []domain.PartyResult, cfg config.ReportConfig) *domain.RegionReport {
	if parties == nil {
		parties = []domain.PartyResult{}
	}
	return &domain.RegionReport{
		RegionID:   cfg.RegionID,
		ElectionID: cfg.ElectionID,
		Turnout:    cfg.Turnout,
		TotalVotes: totalVotes,
		Parties:    parties,
	}
}
