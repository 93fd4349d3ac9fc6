package projection

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/metrics"
	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
)

// latentData builds predictors driven by a single latent factor plus
// column noise, with the target a function of that factor. PLS should
// recover it with one component.
func latentData(n, p int, seed uint64) (*mat.Dense, *mat.VecDense) {
	r := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		latent := r.NormFloat64()
		for j := 0; j < p; j++ {
			X.Set(i, j, latent*(1.0+0.1*float64(j))+0.3*r.NormFloat64())
		}
		y.SetVec(i, 10+5*latent+0.1*r.NormFloat64())
	}
	return X, y
}

func TestPCRFullComponentsMatchesLeastSquares(t *testing.T) {
	// With all p components, PCR spans the same column space as an
	// ordinary regression on the standardized predictors and should fit
	// as well.
	X, y := latentData(100, 4, 1)

	pcr := NewPCR(4)
	if err := pcr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	pred, err := pcr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	r2, err := metrics.R2Score(y, pred)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if r2 < 0.99 {
		t.Errorf("full-rank PCR R² = %v, want > 0.99", r2)
	}
}

func TestPCRComponentValidation(t *testing.T) {
	X, y := latentData(30, 4, 2)

	if err := NewPCR(0).Fit(X, y); err == nil {
		t.Error("0 components should error")
	}
	if err := NewPCR(5).Fit(X, y); err == nil {
		t.Error("components beyond feature count should error")
	}
}

func TestPLSOneComponentRecoversLatentSignal(t *testing.T) {
	X, y := latentData(150, 6, 3)

	pls := NewPLS(1)
	if err := pls.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	pred, err := pls.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	r2, err := metrics.R2Score(y, pred)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if r2 < 0.95 {
		t.Errorf("one-component PLS R² = %v, want > 0.95", r2)
	}
}

func TestPLSBeatsOrMatchesPCRAtLowComponents(t *testing.T) {
	// The supervised projection should reach the latent signal with one
	// component at least as well as the unsupervised one.
	X, y := latentData(150, 6, 4)

	fitScore := func(reg Regressor) float64 {
		if err := reg.Fit(X, y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		pred, err := reg.Predict(X)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		mse, err := metrics.MSE(y, pred)
		if err != nil {
			t.Fatalf("MSE() error = %v", err)
		}
		return mse
	}

	plsMSE := fitScore(NewPLS(1))
	pcrMSE := fitScore(NewPCR(1))
	if plsMSE > pcrMSE*1.05 {
		t.Errorf("PLS(1) MSE %v should not exceed PCR(1) MSE %v", plsMSE, pcrMSE)
	}
}

func TestPredictUsesTrainingStandardization(t *testing.T) {
	X, y := latentData(100, 3, 5)
	train := modelselect.Take(X, seq(0, 80))
	trainY := modelselect.TakeVec(y, seq(0, 80))
	test := modelselect.Take(X, seq(80, 100))

	pcr := NewPCR(2)
	if err := pcr.Fit(train, trainY); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	pred, err := pcr.Predict(test)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < pred.Len(); i++ {
		if math.IsNaN(pred.AtVec(i)) || math.IsInf(pred.AtVec(i), 0) {
			t.Fatalf("prediction %d is not finite: %v", i, pred.AtVec(i))
		}
	}
}

func TestCrossValidateComponents(t *testing.T) {
	X, y := latentData(120, 5, 6)

	kf := modelselect.NewKFold(5, 17)
	curve, err := CrossValidateComponents(X, y, 0, kf, func(m int) Regressor { return NewPLS(m) })
	if err != nil {
		t.Fatalf("CrossValidateComponents() error = %v", err)
	}
	if len(curve.Errors) != 5 {
		t.Fatalf("curve length = %d, want 5", len(curve.Errors))
	}

	best := int(curve.Values[curve.ArgMin()])
	if best < 1 || best > 5 {
		t.Errorf("selected components = %d, want within [1, 5]", best)
	}
	// One latent factor drives the target, so the winner should be small.
	if best > 3 {
		t.Errorf("selected components = %d, expected a small count for one latent factor", best)
	}
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
