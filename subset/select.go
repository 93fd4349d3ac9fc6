package subset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Selection is the outcome of choosing a subset size by held-out error:
// the per-size error curve, the winning size, and that size's best subset
// refitted on every row.
type Selection struct {
	Curve    modelselect.CVCurve
	BestSize int
	Best     Fit
}

// SelectByValidation fits best subsets of every size on the rows marked
// true in trainMask, scores each size's MSE on the remaining rows, and
// refits the winning size on all rows. maxSize caps the scanned sizes;
// zero scans every size.
func SelectByValidation(X mat.Matrix, columns []string, y *mat.VecDense, trainMask []bool, method Method, maxSize int) (*Selection, error) {
	n, _ := X.Dims()
	if len(trainMask) != n {
		return nil, errors.NewDimensionError("subset.SelectByValidation", n, len(trainMask), 0)
	}

	trainIdx, testIdx := modelselect.MaskIndices(trainMask)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, errors.NewValueError("subset.SelectByValidation", "mask leaves an empty partition")
	}

	trainX := modelselect.Take(X, trainIdx)
	trainY := modelselect.TakeVec(y, trainIdx)
	testX := modelselect.Take(X, testIdx)
	testY := modelselect.TakeVec(y, testIdx)

	result, err := Search(trainX, columns, trainY, method, maxSize)
	if err != nil {
		return nil, err
	}

	curve := modelselect.CVCurve{
		Values: make([]float64, len(result.Fits)),
		Errors: make([]float64, len(result.Fits)),
	}
	for i := range result.Fits {
		pred, err := result.Fits[i].Predict(testX, columns)
		if err != nil {
			return nil, err
		}
		var se float64
		for r := 0; r < testY.Len(); r++ {
			d := testY.AtVec(r) - pred.AtVec(r)
			se += d * d
		}
		curve.Values[i] = float64(result.Fits[i].Size)
		curve.Errors[i] = se / float64(testY.Len())
	}

	return refitBest(X, columns, y, method, curve)
}

// SelectByCV chooses the subset size by k-fold cross-validation: for each
// fold, best subsets of every size are fitted on the remaining folds and
// scored on the held-out fold; per-size errors average across folds, and
// the winning size refits on all rows. maxSize caps the scanned sizes;
// zero scans every size.
func SelectByCV(X mat.Matrix, columns []string, y *mat.VecDense, kf *modelselect.KFold, method Method, maxSize int) (*Selection, error) {
	n, p := X.Dims()
	if maxSize > 0 && maxSize < p {
		p = maxSize
	}
	folds, err := kf.Split(n)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, p)
	counts := make([]int, p)
	for _, fold := range folds {
		trainX := modelselect.Take(X, fold.TrainIndices)
		trainY := modelselect.TakeVec(y, fold.TrainIndices)
		testX := modelselect.Take(X, fold.TestIndices)
		testY := modelselect.TakeVec(y, fold.TestIndices)

		result, err := Search(trainX, columns, trainY, method, maxSize)
		if err != nil {
			return nil, err
		}
		for i := range result.Fits {
			pred, err := result.Fits[i].Predict(testX, columns)
			if err != nil {
				return nil, err
			}
			var se float64
			for r := 0; r < testY.Len(); r++ {
				d := testY.AtVec(r) - pred.AtVec(r)
				se += d * d
			}
			sums[i] += se / float64(testY.Len())
			counts[i]++
		}
	}

	curve := modelselect.CVCurve{
		Values: make([]float64, p),
		Errors: make([]float64, p),
	}
	for i := 0; i < p; i++ {
		curve.Values[i] = float64(i + 1)
		curve.Errors[i] = sums[i] / float64(counts[i])
	}

	return refitBest(X, columns, y, method, curve)
}

// refitBest refits the winning size on the full data. CVCurve.ArgMin
// scans with strict less-than, so tied sizes resolve to the smaller one.
func refitBest(X mat.Matrix, columns []string, y *mat.VecDense, method Method, curve modelselect.CVCurve) (*Selection, error) {
	bestSize := int(curve.Values[curve.ArgMin()])
	full, err := Search(X, columns, y, method, bestSize)
	if err != nil {
		return nil, err
	}
	best, err := full.FitForSize(bestSize)
	if err != nil {
		return nil, err
	}
	return &Selection{Curve: curve, BestSize: bestSize, Best: *best}, nil
}
