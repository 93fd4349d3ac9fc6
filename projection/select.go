package projection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Regressor is the common surface of PCR and PLS that component selection
// needs.
type Regressor interface {
	Fit(X mat.Matrix, y *mat.VecDense) error
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// CrossValidateComponents scores component counts 1 through maxComponents
// by k-fold MSE, building a fresh model per count and fold through make.
// The returned curve's ArgMin resolves ties toward fewer components.
func CrossValidateComponents(X mat.Matrix, y *mat.VecDense, maxComponents int, kf *modelselect.KFold, newRegressor func(m int) Regressor) (*modelselect.CVCurve, error) {
	n, p := X.Dims()
	if maxComponents <= 0 || maxComponents > p {
		maxComponents = p
	}
	folds, err := kf.Split(n)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, maxComponents)
	for _, fold := range folds {
		trainX := modelselect.Take(X, fold.TrainIndices)
		trainY := modelselect.TakeVec(y, fold.TrainIndices)
		testX := modelselect.Take(X, fold.TestIndices)
		testY := modelselect.TakeVec(y, fold.TestIndices)

		for m := 1; m <= maxComponents; m++ {
			reg := newRegressor(m)
			if err := reg.Fit(trainX, trainY); err != nil {
				return nil, errors.Wrapf(err, "component count %d", m)
			}
			pred, err := reg.Predict(testX)
			if err != nil {
				return nil, err
			}
			var se float64
			for i := 0; i < testY.Len(); i++ {
				d := testY.AtVec(i) - pred.AtVec(i)
				se += d * d
			}
			sums[m-1] += se / float64(testY.Len())
		}
	}

	curve := &modelselect.CVCurve{
		Values: make([]float64, maxComponents),
		Errors: make([]float64, maxComponents),
	}
	for m := 0; m < maxComponents; m++ {
		curve.Values[m] = float64(m + 1)
		curve.Errors[m] = sums[m] / float64(len(folds))
	}
	return curve, nil
}
