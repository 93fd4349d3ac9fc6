package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Columns lists the predictor columns of the design matrix in order.
// The three nominal factors become 0/1 contrasts named for the level
// coded as 1, and the career averages come last.
var Columns = []string{
	"AtBat", "Hits", "HmRun", "Runs", "RBI", "Walks", "Years",
	"CAtBat", "CHits", "CHmRun", "CRuns", "CRBI", "CWalks",
	"LeagueN", "DivisionW", "PutOuts", "Assists", "Errors", "NewLeagueN",
	"AvgHits", "AvgHmRun", "AvgRuns",
}

// DesignMatrix is a numeric predictor matrix with named columns.
type DesignMatrix struct {
	Columns []string
	X       *mat.Dense
}

// Build converts cleaned, feature-complete records into the design
// matrix and the salary target vector. Records must already carry the
// career averages (see WithCareerAverages).
func Build(records []Record) (*DesignMatrix, *mat.VecDense, error) {
	if len(records) == 0 {
		return nil, nil, errors.WithStack(errors.ErrNoRecords)
	}
	n := len(records)
	p := len(Columns)
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)

	for i, rec := range records {
		X.SetRow(i, []float64{
			float64(rec.AtBat), float64(rec.Hits), float64(rec.HmRun),
			float64(rec.Runs), float64(rec.RBI), float64(rec.Walks),
			float64(rec.Years), float64(rec.CAtBat), float64(rec.CHits),
			float64(rec.CHmRun), float64(rec.CRuns), float64(rec.CRBI),
			float64(rec.CWalks), contrast(rec.League == LeagueNational),
			contrast(rec.Division == DivisionWest), float64(rec.PutOuts),
			float64(rec.Assists), float64(rec.Errors),
			contrast(rec.NewLeague == LeagueNational),
			rec.AvgHits, rec.AvgHmRun, rec.AvgRuns,
		})
		y.SetVec(i, rec.Salary)
	}

	if err := errors.CheckMatrix("dataset.Build", X, n, p); err != nil {
		return nil, nil, err
	}
	cols := make([]string, p)
	copy(cols, Columns)
	return &DesignMatrix{Columns: cols, X: X}, y, nil
}

func contrast(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ColumnIndex returns the position of a named column, or an error if
// the matrix has no such column.
func (d *DesignMatrix) ColumnIndex(name string) (int, error) {
	for j, c := range d.Columns {
		if c == name {
			return j, nil
		}
	}
	return 0, errors.NewValueError("dataset.ColumnIndex", "unknown column "+name)
}

// Column returns a copy of the named column's values.
func (d *DesignMatrix) Column(name string) ([]float64, error) {
	j, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	n, _ := d.X.Dims()
	out := make([]float64, n)
	mat.Col(out, j, d.X)
	return out, nil
}

// SelectColumns returns a new design matrix holding only the named
// columns, in the order given.
func (d *DesignMatrix) SelectColumns(names []string) (*DesignMatrix, error) {
	n, _ := d.X.Dims()
	X := mat.NewDense(n, len(names), nil)
	for k, name := range names {
		j, err := d.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			X.Set(i, k, d.X.At(i, j))
		}
	}
	cols := make([]string, len(names))
	copy(cols, names)
	return &DesignMatrix{Columns: cols, X: X}, nil
}

// TakeRows returns a new design matrix holding only the given rows,
// in the order given.
func (d *DesignMatrix) TakeRows(rows []int) (*DesignMatrix, error) {
	n, p := d.X.Dims()
	X := mat.NewDense(len(rows), p, nil)
	for i, r := range rows {
		if r < 0 || r >= n {
			return nil, errors.NewValueError("dataset.TakeRows", "row index out of range")
		}
		X.SetRow(i, mat.Row(nil, r, d.X))
	}
	cols := make([]string, p)
	copy(cols, d.Columns)
	return &DesignMatrix{Columns: cols, X: X}, nil
}
