package subset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Predict applies the fitted subset coefficients to X, whose column
// labels are given in columns. Each fitted coefficient is matched to its
// column by name: different subset sizes select different column sets, so
// positional indexing would silently misalign.
func (f *Fit) Predict(X mat.Matrix, columns []string) (*mat.VecDense, error) {
	r, c := X.Dims()
	if len(columns) != c {
		return nil, errors.NewDimensionError("subset.Predict", c, len(columns), 1)
	}

	byName := make(map[string]int, c)
	for j, name := range columns {
		byName[name] = j
	}

	colIdx := make([]int, len(f.Columns))
	coefs := make([]float64, len(f.Columns))
	for i, name := range f.Columns {
		j, ok := byName[name]
		if !ok {
			return nil, errors.NewValueError("subset.Predict", "column "+name+" not present in input")
		}
		colIdx[i] = j
		coefs[i] = f.Coefficients[name]
	}

	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := f.Intercept
		for ci, j := range colIdx {
			pred += X.At(i, j) * coefs[ci]
		}
		out.SetVec(i, pred)
	}
	return out, nil
}
