// Package subset implements best-subset selection for linear regression:
// exhaustive, forward-stepwise, and backward-stepwise searches over
// predictor combinations scored by residual sum of squares, with subset
// size chosen externally by validation-set or cross-validated MSE.
package subset

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Method selects the search strategy.
type Method int

const (
	// Exhaustive scores every predictor combination of each size.
	Exhaustive Method = iota
	// Forward adds the predictor that most reduces RSS at each step.
	Forward
	// Backward drops the predictor whose removal least increases RSS.
	Backward
)

func (m Method) String() string {
	switch m {
	case Exhaustive:
		return "exhaustive"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// ParseMethod maps a config string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "exhaustive", "":
		return Exhaustive, nil
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	default:
		return 0, errors.NewValidationError("method", "must be exhaustive, forward, or backward", s)
	}
}

// Fit is the best-scoring subset of a single size. Coefficients are keyed
// by column name; prediction matches columns by name, never by position.
type Fit struct {
	Size         int
	Columns      []string
	Coefficients map[string]float64
	Intercept    float64
	RSS          float64
}

// Result holds the best subset of every size from 1 through the scanned
// maximum, in increasing size order.
type Result struct {
	Method  Method
	Columns []string
	Fits    []Fit
}

// FitForSize returns the best subset of the given size.
func (r *Result) FitForSize(size int) (*Fit, error) {
	if size < 1 || size > len(r.Fits) {
		return nil, errors.NewValidationError("size", "outside the scanned range", size)
	}
	return &r.Fits[size-1], nil
}

// Search explores predictor subsets of sizes 1 through maxSize (0 means
// all predictors) and returns the best fit per size under the given
// strategy.
func Search(X mat.Matrix, columns []string, y *mat.VecDense, method Method, maxSize int) (*Result, error) {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, errors.NewModelError("subset.Search", "empty data", errors.ErrEmptyData)
	}
	if len(columns) != p {
		return nil, errors.NewDimensionError("subset.Search", p, len(columns), 1)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("subset.Search", n, y.Len(), 0)
	}
	if maxSize <= 0 || maxSize > p {
		maxSize = p
	}
	if n <= maxSize+1 {
		return nil, errors.NewValueError("subset.Search", "not enough rows for the largest subset")
	}

	var best [][]int
	var err error
	switch method {
	case Exhaustive:
		best, err = exhaustiveSearch(X, y, p, maxSize)
	case Forward:
		best, err = forwardSearch(X, y, p, maxSize)
	case Backward:
		best, err = backwardSearch(X, y, p, maxSize)
	default:
		return nil, errors.NewValidationError("method", "unknown search method", method)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Method:  method,
		Columns: append([]string(nil), columns...),
		Fits:    make([]Fit, len(best)),
	}
	for i, cols := range best {
		fit, err := fitColumns(X, y, columns, cols)
		if err != nil {
			return nil, err
		}
		result.Fits[i] = *fit
	}
	return result, nil
}

// exhaustiveSearch finds the exact best subset of each size with a
// branch-and-bound scan. Adding a predictor never increases RSS, so the
// RSS of a partial set joined with every remaining candidate bounds all
// of its completions; branches that cannot beat the incumbent are cut.
// A greedy forward pass seeds the incumbent for each size.
func exhaustiveSearch(X mat.Matrix, y *mat.VecDense, p, maxSize int) ([][]int, error) {
	greedy, err := forwardSearch(X, y, p, maxSize)
	if err != nil {
		greedy = nil
	}

	best := make([][]int, 0, maxSize)
	for k := 1; k <= maxSize; k++ {
		bb := &boundedSearch{X: X, y: y, k: k}
		if greedy != nil {
			if rss, err := rssFor(X, y, greedy[k-1]); err == nil {
				bb.bestRSS = rss
				bb.bestCols = append([]int(nil), greedy[k-1]...)
			}
		}
		bb.walk(make([]int, 0, k), 0, p)
		if bb.bestCols == nil {
			return nil, errors.NewModelError("subset.Search", "no solvable subset of size "+strconv.Itoa(k), errors.ErrSingularMatrix)
		}
		best = append(best, bb.bestCols)
	}
	return best, nil
}

type boundedSearch struct {
	X        mat.Matrix
	y        *mat.VecDense
	k        int
	bestRSS  float64
	bestCols []int
}

// walk enumerates size-k supersets of chosen drawn from columns
// next..p-1, pruning branches whose bound cannot improve on the
// incumbent. Singular candidates are skipped; a failed bound solve
// disables pruning for that branch rather than cutting it.
func (b *boundedSearch) walk(chosen []int, next, p int) {
	if len(chosen) == b.k {
		rss, err := rssFor(b.X, b.y, chosen)
		if err != nil {
			return
		}
		if b.bestCols == nil || rss < b.bestRSS {
			b.bestRSS = rss
			b.bestCols = append([]int(nil), chosen...)
		}
		return
	}
	if len(chosen)+(p-next) < b.k {
		return
	}

	if b.bestCols != nil {
		pool := make([]int, 0, len(chosen)+p-next)
		pool = append(pool, chosen...)
		for j := next; j < p; j++ {
			pool = append(pool, j)
		}
		if bound, err := rssFor(b.X, b.y, pool); err == nil && bound >= b.bestRSS {
			return
		}
	}

	b.walk(append(chosen, next), next+1, p)
	b.walk(chosen, next+1, p)
}

// forwardSearch greedily grows the subset one predictor at a time.
func forwardSearch(X mat.Matrix, y *mat.VecDense, p, maxSize int) ([][]int, error) {
	best := make([][]int, 0, maxSize)
	current := make([]int, 0, maxSize)
	inSet := make([]bool, p)

	for k := 1; k <= maxSize; k++ {
		bestRSS := 0.0
		bestJ := -1
		for j := 0; j < p; j++ {
			if inSet[j] {
				continue
			}
			candidate := append(append([]int(nil), current...), j)
			rss, err := rssFor(X, y, candidate)
			if err != nil {
				continue
			}
			if bestJ < 0 || rss < bestRSS {
				bestRSS = rss
				bestJ = j
			}
		}
		if bestJ < 0 {
			return nil, errors.NewModelError("subset.Search", "forward step found no solvable candidate", errors.ErrSingularMatrix)
		}
		current = append(current, bestJ)
		inSet[bestJ] = true
		best = append(best, append([]int(nil), current...))
	}
	return best, nil
}

// backwardSearch greedily shrinks from the full predictor set.
func backwardSearch(X mat.Matrix, y *mat.VecDense, p, maxSize int) ([][]int, error) {
	current := make([]int, p)
	for j := range current {
		current[j] = j
	}

	bySize := make(map[int][]int, p)
	bySize[p] = append([]int(nil), current...)

	for size := p; size > 1; size-- {
		bestRSS := 0.0
		bestDrop := -1
		for di := range current {
			candidate := make([]int, 0, len(current)-1)
			candidate = append(candidate, current[:di]...)
			candidate = append(candidate, current[di+1:]...)
			rss, err := rssFor(X, y, candidate)
			if err != nil {
				continue
			}
			if bestDrop < 0 || rss < bestRSS {
				bestRSS = rss
				bestDrop = di
			}
		}
		if bestDrop < 0 {
			return nil, errors.NewModelError("subset.Search", "backward step found no solvable candidate", errors.ErrSingularMatrix)
		}
		current = append(current[:bestDrop], current[bestDrop+1:]...)
		bySize[size-1] = append([]int(nil), current...)
	}

	best := make([][]int, 0, maxSize)
	for k := 1; k <= maxSize; k++ {
		best = append(best, bySize[k])
	}
	return best, nil
}

// rssFor solves least squares on the selected columns plus intercept and
// returns the residual sum of squares.
func rssFor(X mat.Matrix, y *mat.VecDense, cols []int) (float64, error) {
	coefs, intercept, err := solveColumns(X, y, cols)
	if err != nil {
		return 0, err
	}
	n, _ := X.Dims()
	var rss float64
	for i := 0; i < n; i++ {
		pred := intercept
		for ci, j := range cols {
			pred += X.At(i, j) * coefs[ci]
		}
		d := y.AtVec(i) - pred
		rss += d * d
	}
	return rss, nil
}

func solveColumns(X mat.Matrix, y *mat.VecDense, cols []int) ([]float64, float64, error) {
	n, _ := X.Dims()
	A := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		A.Set(i, 0, 1.0)
		for ci, j := range cols {
			A.Set(i, ci+1, X.At(i, j))
		}
	}
	var beta mat.Dense
	if err := beta.Solve(A, y); err != nil {
		return nil, 0, errors.NewModelError("subset.solve", "singular matrix", errors.ErrSingularMatrix)
	}
	coefs := make([]float64, len(cols))
	for ci := range cols {
		coefs[ci] = beta.At(ci+1, 0)
	}
	return coefs, beta.At(0, 0), nil
}

func fitColumns(X mat.Matrix, y *mat.VecDense, columns []string, cols []int) (*Fit, error) {
	coefs, intercept, err := solveColumns(X, y, cols)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckVector("subset coefficients", coefs); err != nil {
		return nil, err
	}
	rss, err := rssFor(X, y, cols)
	if err != nil {
		return nil, err
	}

	fit := &Fit{
		Size:         len(cols),
		Columns:      make([]string, len(cols)),
		Coefficients: make(map[string]float64, len(cols)),
		Intercept:    intercept,
		RSS:          rss,
	}
	for ci, j := range cols {
		fit.Columns[ci] = columns[j]
		fit.Coefficients[columns[j]] = coefs[ci]
	}
	return fit, nil
}
