// Package report produces the exploratory summary of the cleaned
// dataset: per-column distribution statistics, the pairwise
// correlation matrix, and the diagnostic figures.
package report

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/roshansmehta/MLB-salary-predictor/internal/dataset"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// ColumnSummary holds the distribution statistics of one numeric column.
type ColumnSummary struct {
	Name   string
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
}

// Summary is the exploratory report over the design matrix and target.
type Summary struct {
	Columns     []ColumnSummary
	Correlation *mat.SymDense
	// Names indexes the correlation matrix: design columns first,
	// then "Salary".
	Names []string
}

// Summarize computes per-column statistics and the correlation matrix
// for the design matrix together with the salary target.
func Summarize(design *dataset.DesignMatrix, y *mat.VecDense) (*Summary, error) {
	n, p := design.X.Dims()
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("report.Summarize", n, y.Len(), 0)
	}

	names := make([]string, 0, p+1)
	names = append(names, design.Columns...)
	names = append(names, "Salary")

	all := mat.NewDense(n, p+1, nil)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			all.Set(i, j, design.X.At(i, j))
		}
	}
	for i := 0; i < n; i++ {
		all.Set(i, p, y.AtVec(i))
	}

	summaries := make([]ColumnSummary, p+1)
	col := make([]float64, n)
	for j := 0; j < p+1; j++ {
		mat.Col(col, j, all)
		s, err := summarizeColumn(names[j], col)
		if err != nil {
			return nil, err
		}
		summaries[j] = s
	}

	corr := mat.NewSymDense(p+1, nil)
	stat.CorrelationMatrix(corr, all, nil)

	return &Summary{Columns: summaries, Correlation: corr, Names: names}, nil
}

func summarizeColumn(name string, values []float64) (ColumnSummary, error) {
	if err := errors.CheckVector("report.summarizeColumn", values); err != nil {
		return ColumnSummary{}, err
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return ColumnSummary{
		Name:   name,
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Mean:   stat.Mean(sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}, nil
}

// SalaryCorrelations returns column names paired with their correlation
// against the salary target, strongest absolute correlation first.
func (s *Summary) SalaryCorrelations() []Correlation {
	last := len(s.Names) - 1
	out := make([]Correlation, 0, last)
	for j := 0; j < last; j++ {
		out = append(out, Correlation{Name: s.Names[j], R: s.Correlation.At(j, last)})
	}
	sort.Slice(out, func(a, b int) bool {
		ra, rb := out[a].R, out[b].R
		if ra < 0 {
			ra = -ra
		}
		if rb < 0 {
			rb = -rb
		}
		return ra > rb
	})
	return out
}

// Correlation pairs a column name with its Pearson r against salary.
type Correlation struct {
	Name string
	R    float64
}

// Format renders the summary as a fixed-width text table.
func (s *Summary) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %10s %10s %10s %10s %10s\n",
		"column", "min", "q1", "median", "mean", "q3", "max")
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "%-12s %10.2f %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			c.Name, c.Min, c.Q1, c.Median, c.Mean, c.Q3, c.Max)
	}
	return b.String()
}
