package dataset

import (
	"strconv"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// WithCareerAverages returns a copy of records with the per-season
// career averages filled in: AvgHits, AvgHmRun, and AvgRuns divide the
// cumulative career totals by years in the league. A record with zero
// or negative Years cannot be averaged and is reported as an error
// rather than silently producing Inf.
func WithCareerAverages(records []Record) ([]Record, error) {
	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Years <= 0 {
			row := out[i].Name
			if row == "" {
				row = "row " + strconv.Itoa(i)
			}
			return nil, errors.NewDivisionByZeroError(
				"dataset.WithCareerAverages", "career totals", "Years", row,
			)
		}
		years := float64(out[i].Years)
		out[i].AvgHits = float64(out[i].CHits) / years
		out[i].AvgHmRun = float64(out[i].CHmRun) / years
		out[i].AvgRuns = float64(out[i].CRuns) / years
	}
	return out, nil
}
