package domain

// RawEntry is one data row of the input source.
type RawEntry struct {
	DisplayName string
	Votes       int64
	// Row is the 1-based row number in the source. Used only for error context.
	Row int
}

// PartyResult is a single party's line in a region report.
type PartyResult struct {
	PartyID    string  `json:"partyId"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// RegionReport holds the computed results for one region and election.
// Parties is ordered by votes descending.
type RegionReport struct {
	RegionID   string        `json:"regionId"`
	ElectionID string        `json:"electionId"`
	Turnout    float64       `json:"turnout"`
	TotalVotes int64         `json:"totalVotes"`
	Parties    []PartyResult `json:"parties"`
}

// RunSummary describes a completed pipeline pass.
type RunSummary struct {
	RunID    string
	Rows     int
	Unmapped []string
	// Written lists output files in the order they were written.
	Written []string
	DryRun  bool
	Report  *RegionReport
}
