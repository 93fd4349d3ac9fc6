// Package linear implements the linear models fitted by the pipeline:
// ordinary least squares and the penalized elastic-net family covering
// ridge (l1Ratio 0) and the lasso (l1Ratio 1).
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/core/model"
	"github.com/roshansmehta/MLB-salary-predictor/metrics"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// OLS is an ordinary least squares regression model. The system is solved
// by QR factorization rather than the normal equations, which keeps it
// accurate enough to serve as the exact reference for ridge at zero
// penalty.
type OLS struct {
	state        *model.StateManager
	fitIntercept bool

	coef      []float64
	intercept float64
	nFeatures int
}

// NewOLS creates an unfitted OLS model.
func NewOLS(opts ...OLSOption) *OLS {
	lr := &OLS{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// OLSOption configures an OLS model.
type OLSOption func(*OLS)

// WithOLSIntercept sets whether the model learns an intercept.
func WithOLSIntercept(fit bool) OLSOption {
	return func(lr *OLS) {
		lr.fitIntercept = fit
	}
}

// Fit estimates the coefficients from training data.
func (lr *OLS) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("OLS.Fit", r, y.Len(), 0)
	}

	cols := c
	if lr.fitIntercept {
		cols = c + 1
	}
	if r < cols {
		return errors.NewValueError("OLS.Fit", "more columns than rows")
	}

	A := mat.NewDense(r, cols, nil)
	for i := 0; i < r; i++ {
		off := 0
		if lr.fitIntercept {
			A.Set(i, 0, 1.0)
			off = 1
		}
		for j := 0; j < c; j++ {
			A.Set(i, j+off, X.At(i, j))
		}
	}

	var beta mat.Dense
	if err := beta.Solve(A, y); err != nil {
		return errors.NewModelError("OLS.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	lr.coef = make([]float64, c)
	if lr.fitIntercept {
		lr.intercept = beta.At(0, 0)
		for j := 0; j < c; j++ {
			lr.coef[j] = beta.At(j+1, 0)
		}
	} else {
		lr.intercept = 0
		for j := 0; j < c; j++ {
			lr.coef[j] = beta.At(j, 0)
		}
	}

	if err := errors.CheckVector("OLS.Fit coefficients", lr.coef); err != nil {
		return err
	}

	lr.nFeatures = c
	lr.state.SetDimensions(c, r)
	lr.state.SetFitted()
	return nil
}

// Predict returns fitted values for X.
func (lr *OLS) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := lr.state.RequireFitted("OLS", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("OLS.Predict", lr.nFeatures, c, 1)
	}

	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := lr.intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.coef[j]
		}
		out.SetVec(i, pred)
	}
	return out, nil
}

// Coefficients returns a copy of the fitted coefficients.
func (lr *OLS) Coefficients() []float64 {
	if lr.coef == nil {
		return nil
	}
	out := make([]float64, len(lr.coef))
	copy(out, lr.coef)
	return out
}

// Intercept returns the fitted intercept.
func (lr *OLS) Intercept() float64 {
	return lr.intercept
}

// Score returns the coefficient of determination on the given data.
func (lr *OLS) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// IsFitted reports whether Fit has completed.
func (lr *OLS) IsFitted() bool {
	return lr.state.IsFitted()
}
