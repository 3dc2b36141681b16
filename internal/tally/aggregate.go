// Package tally derives vote totals, shares and ranking from raw entries.
package tally

import (
	"errors"
	"math"

	"resultsgen/internal/domain"
)

// ErrVoteOverflow is returned when the vote total does not fit in an int64.
var ErrVoteOverflow = errors.New("total vote count overflows int64")

// Resolver maps a display name to a party id.
type Resolver interface {
	Resolve(displayName string) string
}

// Total returns the exact sum of votes across entries.
func Total(entries []domain.RawEntry) (int64, error) {
	var total int64
	for _, e := range entries {
		if e.Votes > math.MaxInt64-total {
			return 0, ErrVoteOverflow
		}
		total += e.Votes
	}
	return total, nil
}

// Percentage returns votes/total*100 rounded to two decimals, half away
// from zero. The rounding is done on integer hundredths so that values
// exactly on a .005 boundary always round up. A zero total yields 0.
func Percentage(votes, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(hundredths(votes, total)) / 100
}

// hundredths computes round(votes*10000/total) without float error.
// The remainder is scaled separately so votes*10000 never overflows.
func hundredths(votes, total int64) int64 {
	q, r := votes/total, votes%total
	if r > math.MaxInt64/10000 {
		// Totals beyond ~9.2e14 votes; float precision is ample there.
		return q*10000 + int64(math.Floor(float64(r)/float64(total)*10000+0.5))
	}
	frac, rem := r*10000/total, r*10000%total
	if rem >= total-rem {
		frac++
	}
	return q*10000 + frac
}

// Aggregate computes the total and one PartyResult per entry, in input order.
// An empty input yields a zero total and an empty, non-nil slice.
func Aggregate(entries []domain.RawEntry, names Resolver) (int64, []domain.PartyResult, error) {
	total, err := Total(entries)
	if err != nil {
		return 0, nil, err
	}

	results := make([]domain.PartyResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, domain.PartyResult{
			PartyID:    names.Resolve(e.DisplayName),
			Votes:      e.Votes,
			Percentage: Percentage(e.Votes, total),
		})
	}
	return total, results, nil
}
