// Package modelselect provides the seeded data partitioning used to tune
// and evaluate the regression models: a random train/test mask and a k-fold
// splitter. A fixed seed yields identical partitions across runs.
package modelselect

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// TrainTestMask returns a boolean membership vector of length n with
// round(n*trainFrac) true entries chosen by a seeded draw. True marks a
// training row.
func TrainTestMask(n int, trainFrac float64, seed uint64) ([]bool, error) {
	if n <= 0 {
		return nil, errors.NewValueError("TrainTestMask", "n must be positive")
	}
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, errors.NewValidationError("trainFrac", "must be in (0, 1)", trainFrac)
	}

	nTrain := int(float64(n)*trainFrac + 0.5)
	if nTrain == 0 {
		nTrain = 1
	}
	if nTrain == n {
		nTrain = n - 1
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	mask := make([]bool, n)
	for _, idx := range indices[:nTrain] {
		mask[idx] = true
	}
	return mask, nil
}

// MaskIndices splits a membership mask into train and test index slices,
// both in ascending row order.
func MaskIndices(mask []bool) (train, test []int) {
	for i, inTrain := range mask {
		if inTrain {
			train = append(train, i)
		} else {
			test = append(test, i)
		}
	}
	return train, test
}

// Take copies the given rows of X into a new matrix, in ascending index
// order.
func Take(X mat.Matrix, rows []int) *mat.Dense {
	_, c := X.Dims()
	sorted := make([]int, len(rows))
	copy(sorted, rows)
	sort.Ints(sorted)

	out := mat.NewDense(len(sorted), c, nil)
	for i, idx := range sorted {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(idx, j))
		}
	}
	return out
}

// TakeVec copies the given elements of y into a new vector, in ascending
// index order.
func TakeVec(y *mat.VecDense, rows []int) *mat.VecDense {
	sorted := make([]int, len(rows))
	copy(sorted, rows)
	sort.Ints(sorted)

	out := mat.NewVecDense(len(sorted), nil)
	for i, idx := range sorted {
		out.SetVec(i, y.AtVec(idx))
	}
	return out
}
