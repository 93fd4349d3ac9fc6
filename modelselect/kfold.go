package modelselect

import (
	"math/rand/v2"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Fold holds the row indices of one cross-validation fold.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold assigns every row to exactly one of NSplits folds. Fold sizes
// differ by at most one; the remainder spreads over the leading folds.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold creates a shuffled k-fold splitter. nSplits below 2 falls back
// to 10, the fold count the analysis uses throughout.
func NewKFold(nSplits int, seed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 10
	}
	return &KFold{NSplits: nSplits, Shuffle: true, Seed: seed}
}

// Split generates train/test indices for each fold over n rows.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if n < kf.NSplits {
		return nil, errors.NewValueError("KFold.Split", "fewer rows than folds")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	current := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[current:current+testSize])

		inTest := make(map[int]bool, testSize)
		for _, idx := range testIndices {
			inTest[idx] = true
		}
		trainIndices := make([]int, 0, n-testSize)
		for j := 0; j < n; j++ {
			if !inTest[j] {
				trainIndices = append(trainIndices, j)
			}
		}

		folds[i] = Fold{TrainIndices: trainIndices, TestIndices: testIndices}
		current += testSize
	}
	return folds, nil
}

// CVCurve holds mean held-out error per candidate value of a tuning
// parameter, indexed identically to the candidate slice that produced it.
type CVCurve struct {
	Values []float64 // candidate parameter values (size, lambda, components)
	Errors []float64 // mean cross-validated MSE per candidate
}

// ArgMin returns the index of the smallest error. The scan uses strict
// less-than from the front, so ties resolve to the earlier (simpler)
// candidate.
func (c *CVCurve) ArgMin() int {
	best := 0
	for i := 1; i < len(c.Errors); i++ {
		if c.Errors[i] < c.Errors[best] {
			best = i
		}
	}
	return best
}
