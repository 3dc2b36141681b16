package tally

import (
	"sort"

	"resultsgen/internal/domain"
)

// Rank returns a copy of results sorted by votes descending. Parties with
// equal votes keep their input order.
func Rank(results []domain.PartyResult) []domain.PartyResult {
	ranked := make([]domain.PartyResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked
}
