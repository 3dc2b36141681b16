package loader

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"resultsgen/internal/domain"
)

// groupedInt matches integers written with comma digit grouping, e.g. 1,234,567.
var groupedInt = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)

// integralFloat matches spreadsheet renderings of whole numbers, e.g. 300.0.
var integralFloat = regexp.MustCompile(`^(-?\d+)\.0+$`)

// groupSpaces are characters spreadsheets use as thousands separators.
var groupSpaces = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\u2009", "", "'", "")

// ParseVotes parses a vote-count cell as a non-negative integer.
// Accepted forms: 1234, 1 234 (any space-like grouping), 1,234 and 1234.0.
func ParseVotes(cell string) (int64, error) {
	s := groupSpaces.Replace(strings.TrimSpace(cell))
	if groupedInt.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	if m := integralFloat.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, errors.Join(domain.ErrInvalidVotes, err)
		}
		return 0, domain.ErrInvalidVotes
	}
	if n < 0 {
		return 0, domain.ErrNegativeVotes
	}
	return n, nil
}
