package modelselect

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTrainTestMask(t *testing.T) {
	mask, err := TrainTestMask(263, 0.5, 1)
	if err != nil {
		t.Fatalf("TrainTestMask() error = %v", err)
	}
	if len(mask) != 263 {
		t.Fatalf("mask length = %d, want 263", len(mask))
	}

	nTrain := 0
	for _, m := range mask {
		if m {
			nTrain++
		}
	}
	// round(263 * 0.5) = 132
	if nTrain != 132 {
		t.Errorf("training rows = %d, want 132", nTrain)
	}
}

func TestTrainTestMaskReproducible(t *testing.T) {
	a, err := TrainTestMask(100, 0.5, 42)
	if err != nil {
		t.Fatalf("TrainTestMask() error = %v", err)
	}
	b, err := TrainTestMask(100, 0.5, 42)
	if err != nil {
		t.Fatalf("TrainTestMask() error = %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different masks at index %d", i)
		}
	}

	c, err := TrainTestMask(100, 0.5, 43)
	if err != nil {
		t.Fatalf("TrainTestMask() error = %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical masks")
	}
}

func TestTrainTestMaskValidation(t *testing.T) {
	if _, err := TrainTestMask(0, 0.5, 1); err == nil {
		t.Error("n=0 should error")
	}
	if _, err := TrainTestMask(10, 0.0, 1); err == nil {
		t.Error("trainFrac=0 should error")
	}
	if _, err := TrainTestMask(10, 1.0, 1); err == nil {
		t.Error("trainFrac=1 should error")
	}
}

func TestKFoldPartition(t *testing.T) {
	const n = 263
	kf := NewKFold(10, 7)
	folds, err := kf.Split(n)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(folds) != 10 {
		t.Fatalf("fold count = %d, want 10", len(folds))
	}

	// Every row appears in exactly one test fold.
	seen := make(map[int]int)
	minSize, maxSize := n, 0
	for _, f := range folds {
		if len(f.TestIndices) < minSize {
			minSize = len(f.TestIndices)
		}
		if len(f.TestIndices) > maxSize {
			maxSize = len(f.TestIndices)
		}
		for _, idx := range f.TestIndices {
			seen[idx]++
		}
		if len(f.TrainIndices)+len(f.TestIndices) != n {
			t.Errorf("train+test = %d, want %d", len(f.TrainIndices)+len(f.TestIndices), n)
		}
	}
	if len(seen) != n {
		t.Errorf("rows covered = %d, want %d", len(seen), n)
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("row %d appears in %d folds", idx, count)
		}
	}
	if maxSize-minSize > 1 {
		t.Errorf("fold sizes differ by %d, want at most 1", maxSize-minSize)
	}
}

func TestKFoldTooFewRows(t *testing.T) {
	kf := NewKFold(10, 1)
	if _, err := kf.Split(5); err == nil {
		t.Error("Split() with fewer rows than folds should error")
	}
}

func TestTake(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	got := Take(X, []int{3, 0})

	r, c := got.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("dims = (%d,%d), want (2,2)", r, c)
	}
	// Rows come back in ascending source order.
	if got.At(0, 0) != 1 || got.At(1, 0) != 7 {
		t.Errorf("unexpected rows: %v, %v", got.At(0, 0), got.At(1, 0))
	}
}

func TestCVCurveArgMinTieBreak(t *testing.T) {
	curve := &CVCurve{
		Values: []float64{1, 2, 3, 4},
		Errors: []float64{5.0, 3.0, 3.0, 4.0},
	}
	if got := curve.ArgMin(); got != 1 {
		t.Errorf("ArgMin() = %d, want 1 (ties resolve to the earlier candidate)", got)
	}
}
