// Package projection implements the two latent-component regressions in
// the pipeline: principal-components regression, whose components are
// ranked by predictor variance alone, and partial least squares, whose
// components maximize covariance with the target. Both standardize
// predictors with training statistics only.
package projection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/core/model"
	"github.com/roshansmehta/MLB-salary-predictor/linear"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
	"github.com/roshansmehta/MLB-salary-predictor/preprocessing"
)

// PCR regresses the target on the leading principal components of the
// standardized predictors.
type PCR struct {
	state       *model.StateManager
	nComponents int

	scaler    *preprocessing.StandardScaler
	rotation  *mat.Dense // p×M, leading right singular vectors
	ols       *linear.OLS
	nFeatures int
}

// NewPCR creates an unfitted PCR model with the given component count.
func NewPCR(nComponents int) *PCR {
	return &PCR{
		state:       model.NewStateManager(),
		nComponents: nComponents,
		scaler:      preprocessing.NewStandardScaler(),
	}
}

// NComponents returns the configured component count.
func (p *PCR) NComponents() int {
	return p.nComponents
}

// Fit standardizes X, extracts the leading components by SVD, and
// regresses y on the resulting scores.
func (p *PCR) Fit(X mat.Matrix, y *mat.VecDense) error {
	n, c := X.Dims()
	if n == 0 || c == 0 {
		return errors.NewModelError("PCR.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError("PCR.Fit", n, y.Len(), 0)
	}
	if p.nComponents < 1 || p.nComponents > c {
		return errors.NewValidationError("nComponents", "must be in [1, feature count]", p.nComponents)
	}

	Xs, err := p.scaler.FitTransform(X)
	if err != nil {
		return err
	}

	var svd mat.SVD
	if ok := svd.Factorize(Xs, mat.SVDThin); !ok {
		return errors.NewModelError("PCR.Fit", "SVD failed to converge", errors.ErrSingularMatrix)
	}
	var v mat.Dense
	svd.VTo(&v)

	p.rotation = mat.NewDense(c, p.nComponents, nil)
	for i := 0; i < c; i++ {
		for j := 0; j < p.nComponents; j++ {
			p.rotation.Set(i, j, v.At(i, j))
		}
	}

	var scores mat.Dense
	scores.Mul(Xs, p.rotation)

	p.ols = linear.NewOLS()
	if err := p.ols.Fit(&scores, y); err != nil {
		return err
	}

	p.nFeatures = c
	p.state.SetDimensions(c, n)
	p.state.SetFitted()
	return nil
}

// Predict projects X through the training standardization and rotation,
// then applies the score regression.
func (p *PCR) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := p.state.RequireFitted("PCR", "Predict"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PCR.Predict", p.nFeatures, c, 1)
	}

	Xs, err := p.scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	var scores mat.Dense
	scores.Mul(Xs, p.rotation)
	return p.ols.Predict(&scores)
}

// IsFitted reports whether Fit has completed.
func (p *PCR) IsFitted() bool {
	return p.state.IsFitted()
}
