package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
)

// syntheticData builds a deterministic regression problem
// y = 4 + 3*x1 - 2*x2 + 0.5*x3 + noise.
func syntheticData(n int, seed uint64) (*mat.Dense, *mat.VecDense) {
	r := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x1 := r.NormFloat64()
		x2 := r.NormFloat64() * 2
		x3 := r.NormFloat64() * 0.5
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		X.Set(i, 2, x3)
		y.SetVec(i, 4+3*x1-2*x2+0.5*x3+0.01*r.NormFloat64())
	}
	return X, y
}

func TestOLSRecoversCoefficients(t *testing.T) {
	X, y := syntheticData(200, 1)

	ols := NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coef := ols.Coefficients()
	want := []float64{3, -2, 0.5}
	for j, w := range want {
		if math.Abs(coef[j]-w) > 0.05 {
			t.Errorf("coef[%d] = %v, want about %v", j, coef[j], w)
		}
	}
	if math.Abs(ols.Intercept()-4) > 0.05 {
		t.Errorf("intercept = %v, want about 4", ols.Intercept())
	}

	r2, err := ols.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if r2 < 0.99 {
		t.Errorf("R² = %v, want > 0.99", r2)
	}
}

func TestOLSValidation(t *testing.T) {
	ols := NewOLS()
	if err := ols.Fit(mat.NewDense(2, 5, nil), mat.NewVecDense(2, nil)); err == nil {
		t.Error("Fit() with more columns than rows should error")
	}
	if _, err := ols.Predict(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Predict() before Fit() should error")
	}
}

func TestRidgeZeroPenaltyMatchesOLS(t *testing.T) {
	X, y := syntheticData(120, 2)

	ols := NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("OLS Fit() error = %v", err)
	}
	ridge := NewRidge(0)
	if err := ridge.Fit(X, y); err != nil {
		t.Fatalf("Ridge Fit() error = %v", err)
	}

	oc, rc := ols.Coefficients(), ridge.Coefficients()
	for j := range oc {
		rel := math.Abs(oc[j]-rc[j]) / math.Max(math.Abs(oc[j]), 1e-12)
		if rel > 1e-6 {
			t.Errorf("coef[%d]: ridge λ=0 %v vs OLS %v (rel diff %v)", j, rc[j], oc[j], rel)
		}
	}
	if math.Abs(ols.Intercept()-ridge.Intercept()) > 1e-6*math.Abs(ols.Intercept()) {
		t.Errorf("intercepts diverge: %v vs %v", ridge.Intercept(), ols.Intercept())
	}
}

func TestRidgeShrinksWithPenalty(t *testing.T) {
	X, y := syntheticData(120, 3)

	norm := func(lambda float64) float64 {
		ridge := NewRidge(lambda)
		if err := ridge.Fit(X, y); err != nil {
			t.Fatalf("Fit(λ=%v) error = %v", lambda, err)
		}
		var n float64
		for _, b := range ridge.Coefficients() {
			n += b * b
		}
		return math.Sqrt(n)
	}

	small, large := norm(0.01), norm(100)
	if large >= small {
		t.Errorf("‖β(λ=100)‖ = %v should be below ‖β(λ=0.01)‖ = %v", large, small)
	}
	// Ridge never zeroes coefficients outright.
	ridge := NewRidge(100)
	if err := ridge.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for j, b := range ridge.Coefficients() {
		if b == 0 {
			t.Errorf("ridge coef[%d] is exactly zero", j)
		}
	}
}

func TestLassoSparsity(t *testing.T) {
	X, y := syntheticData(120, 4)

	// A huge penalty drives every coefficient to exactly zero.
	lasso := NewLasso(1e6)
	if err := lasso.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if nz := lasso.NumNonZero(); nz != 0 {
		t.Errorf("NumNonZero() at huge penalty = %d, want 0", nz)
	}

	// A small penalty keeps the strong predictors.
	lasso = NewLasso(0.01)
	if err := lasso.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	coef := lasso.Coefficients()
	if math.Abs(coef[0]-3) > 0.2 || math.Abs(coef[1]+2) > 0.2 {
		t.Errorf("lasso at small penalty lost the signal: %v", coef)
	}
}

func TestElasticNetValidation(t *testing.T) {
	X, y := syntheticData(20, 5)

	if err := NewElasticNet(-1, 0.5).Fit(X, y); err == nil {
		t.Error("negative lambda should error")
	}
	if err := NewElasticNet(1, 1.5).Fit(X, y); err == nil {
		t.Error("l1Ratio > 1 should error")
	}
}

func TestGeometricGrid(t *testing.T) {
	grid, err := GeometricGrid(10, -2, 100)
	if err != nil {
		t.Fatalf("GeometricGrid() error = %v", err)
	}
	if len(grid) != 100 {
		t.Fatalf("grid length = %d, want 100", len(grid))
	}
	if math.Abs(grid[0]-1e10) > 1 {
		t.Errorf("grid[0] = %v, want 1e10", grid[0])
	}
	if math.Abs(grid[99]-1e-2) > 1e-9 {
		t.Errorf("grid[99] = %v, want 1e-2", grid[99])
	}
	if err := ValidateGrid(grid); err != nil {
		t.Errorf("generated grid failed validation: %v", err)
	}
}

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name    string
		grid    []float64
		wantErr bool
	}{
		{name: "valid decreasing", grid: []float64{10, 1, 0.1}},
		{name: "zero as final point", grid: []float64{10, 1, 0}},
		{name: "empty", grid: nil, wantErr: true},
		{name: "increasing", grid: []float64{1, 10}, wantErr: true},
		{name: "repeated", grid: []float64{1, 1}, wantErr: true},
		{name: "negative", grid: []float64{1, -1}, wantErr: true},
		{name: "zero mid-grid", grid: []float64{1, 0, 0.5}, wantErr: true},
		{name: "nan", grid: []float64{1, math.NaN()}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrid(tt.grid)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrid(%v) error = %v, wantErr %v", tt.grid, err, tt.wantErr)
			}
		})
	}
}

func TestFitPathMatchesSingleFits(t *testing.T) {
	X, y := syntheticData(100, 6)
	lambdas := []float64{10, 1, 0.1, 0.01}

	path, err := FitPath(X, y, lambdas, 1)
	if err != nil {
		t.Fatalf("FitPath() error = %v", err)
	}

	for li, lambda := range lambdas {
		single := NewLasso(lambda)
		if err := single.Fit(X, y); err != nil {
			t.Fatalf("Fit(λ=%v) error = %v", lambda, err)
		}
		sc := single.Coefficients()
		for j := range sc {
			if math.Abs(path.Coefs[li][j]-sc[j]) > 1e-4 {
				t.Errorf("λ=%v coef[%d]: path %v vs single %v", lambda, j, path.Coefs[li][j], sc[j])
			}
		}
	}
}

func TestCrossValidateLambda(t *testing.T) {
	X, y := syntheticData(100, 7)
	lambdas := []float64{1e4, 100, 1, 0.01}

	kf := modelselect.NewKFold(5, 11)
	curve, err := CrossValidateLambda(X, y, lambdas, 0, kf)
	if err != nil {
		t.Fatalf("CrossValidateLambda() error = %v", err)
	}
	if len(curve.Errors) != len(lambdas) {
		t.Fatalf("curve length = %d, want %d", len(curve.Errors), len(lambdas))
	}
	for i, e := range curve.Errors {
		if e <= 0 || math.IsNaN(e) || math.IsInf(e, 0) {
			t.Errorf("curve.Errors[%d] = %v, want finite positive", i, e)
		}
	}
	// The data is nearly noiseless, so a tiny penalty must beat a huge one.
	best := curve.ArgMin()
	if lambdas[best] > 1 {
		t.Errorf("selected λ = %v, expected a small penalty to win", lambdas[best])
	}
}
