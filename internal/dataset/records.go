// Package dataset loads and prepares the player-season table: CSV
// ingestion, missing-value cleaning, factor parsing, derived career
// averages, and the labeled design matrix the models consume.
package dataset

import (
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// League is a two-level factor: American or National.
type League string

const (
	LeagueAmerican League = "A"
	LeagueNational League = "N"
)

// ParseLeague validates and converts a raw league label.
func ParseLeague(s string) (League, error) {
	switch s {
	case "A":
		return LeagueAmerican, nil
	case "N":
		return LeagueNational, nil
	default:
		return "", errors.NewValidationError("League", "must be A or N", s)
	}
}

// Division is a two-level factor: East or West.
type Division string

const (
	DivisionEast Division = "E"
	DivisionWest Division = "W"
)

// ParseDivision validates and converts a raw division label.
func ParseDivision(s string) (Division, error) {
	switch s {
	case "E":
		return DivisionEast, nil
	case "W":
		return DivisionWest, nil
	default:
		return "", errors.NewValidationError("Division", "must be E or W", s)
	}
}

// Record is one player-season after cleaning: 1986 season counting
// stats, career cumulative stats, fielding stats, the two league/division
// factors plus the following season's league, and the salary target in
// thousands of dollars.
type Record struct {
	Name string

	AtBat int
	Hits  int
	HmRun int
	Runs  int
	RBI   int
	Walks int
	Years int

	CAtBat int
	CHits  int
	CHmRun int
	CRuns  int
	CRBI   int
	CWalks int

	League   League
	Division Division

	PutOuts int
	Assists int
	Errors  int

	Salary    float64
	NewLeague League

	// Career per-year averages, derived by WithCareerAverages.
	AvgHits  float64
	AvgHmRun float64
	AvgRuns  float64
}
