package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScaler()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := Xs.Dims()
	for j := 0; j < c; j++ {
		var sum, ss float64
		for i := 0; i < r; i++ {
			sum += Xs.At(i, j)
		}
		mean := sum / float64(r)
		for i := 0; i < r; i++ {
			d := Xs.At(i, j) - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(r))

		if math.Abs(mean) > 1e-12 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(sd-1.0) > 1e-12 {
			t.Errorf("column %d sd = %v, want 1", j, sd)
		}
	}
}

func TestStandardScalerNoLeakage(t *testing.T) {
	// Test rows must be standardized with training statistics, not their own.
	train := mat.NewDense(3, 1, []float64{0.0, 1.0, 2.0}) // mean 1, sd sqrt(2/3)
	test := mat.NewDense(2, 1, []float64{100.0, 200.0})

	scaler := NewStandardScaler()
	if err := scaler.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got, err := scaler.Transform(test)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	sd := math.Sqrt(2.0 / 3.0)
	want0 := (100.0 - 1.0) / sd
	if math.Abs(got.At(0, 0)-want0) > 1e-12 {
		t.Errorf("Transform()[0] = %v, want %v", got.At(0, 0), want0)
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		5.0, -1.0,
		7.0, 0.0,
		9.0, 1.0,
	})

	scaler := NewStandardScaler()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	back, err := scaler.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-12 {
				t.Errorf("round trip mismatch at (%d,%d): %v != %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{4.0, 4.0, 4.0})

	scaler := NewStandardScaler()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if v := Xs.At(i, 0); v != 0 || math.IsNaN(v) {
			t.Errorf("constant column should center to 0, got %v", v)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit() should error")
	}
}
