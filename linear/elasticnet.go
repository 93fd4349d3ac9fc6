package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/core/model"
	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// ElasticNet fits the penalized objective
//
//	(1/2n)·RSS + λ·(l1Ratio·‖β‖₁ + (1−l1Ratio)/2·‖β‖₂²)
//
// over internally standardized predictors, reporting coefficients on the
// original scale. l1Ratio 0 is ridge, solved in closed form; l1Ratio 1 is
// the lasso, solved by coordinate descent. A penalty of exactly zero
// routes to the exact QR least-squares solve, so ridge at λ=0 reproduces
// OLS coefficients.
type ElasticNet struct {
	state *model.StateManager

	lambda  float64
	l1Ratio float64
	maxIter int
	tol     float64

	coef      []float64
	intercept float64
	nFeatures int
	nIter     int
}

// NewElasticNet creates an unfitted elastic-net model.
func NewElasticNet(lambda, l1Ratio float64, opts ...Option) *ElasticNet {
	en := &ElasticNet{
		state:   model.NewStateManager(),
		lambda:  lambda,
		l1Ratio: l1Ratio,
		maxIter: 1000,
		tol:     1e-7,
	}
	for _, opt := range opts {
		opt(en)
	}
	return en
}

// NewRidge creates an L2-only model (l1Ratio 0).
func NewRidge(lambda float64, opts ...Option) *ElasticNet {
	return NewElasticNet(lambda, 0, opts...)
}

// NewLasso creates an L1-only model (l1Ratio 1).
func NewLasso(lambda float64, opts ...Option) *ElasticNet {
	return NewElasticNet(lambda, 1, opts...)
}

// Fit estimates the coefficients from training data.
func (en *ElasticNet) Fit(X mat.Matrix, y *mat.VecDense) error {
	if err := en.validate(); err != nil {
		return err
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("ElasticNet.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("ElasticNet.Fit", r, y.Len(), 0)
	}

	if en.lambda == 0 {
		// Exact path: an unpenalized fit must match least squares, so
		// solve it as one instead of pushing 0 through the grid solver.
		ols := NewOLS()
		if err := ols.Fit(X, y); err != nil {
			return err
		}
		en.coef = ols.Coefficients()
		en.intercept = ols.Intercept()
		en.finish(c, r, 1)
		return nil
	}

	std := newStandardized(X, y)
	var beta []float64
	var iters int
	var converged bool

	if en.l1Ratio == 0 {
		var err error
		beta, err = ridgeSolve(std, en.lambda)
		if err != nil {
			return err
		}
		iters, converged = 1, true
	} else {
		beta, iters, converged = coordinateDescent(std, en.lambda, en.l1Ratio, nil, en.maxIter, en.tol)
		if !converged {
			errors.Warn(errors.NewConvergenceWarning("ElasticNet", iters, ""))
		}
	}

	en.coef, en.intercept = std.unstandardize(beta)
	if err := errors.CheckVector("ElasticNet.Fit coefficients", en.coef); err != nil {
		return err
	}
	en.finish(c, r, iters)
	return nil
}

func (en *ElasticNet) finish(nFeatures, nSamples, iters int) {
	en.nFeatures = nFeatures
	en.nIter = iters
	en.state.SetDimensions(nFeatures, nSamples)
	en.state.SetFitted()
}

func (en *ElasticNet) validate() error {
	if en.lambda < 0 {
		return errors.NewValidationError("lambda", "must be non-negative", en.lambda)
	}
	if en.l1Ratio < 0 || en.l1Ratio > 1 {
		return errors.NewValidationError("l1Ratio", "must be in [0, 1]", en.l1Ratio)
	}
	return nil
}

// Predict returns fitted values for X.
func (en *ElasticNet) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := en.state.RequireFitted("ElasticNet", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != en.nFeatures {
		return nil, errors.NewDimensionError("ElasticNet.Predict", en.nFeatures, c, 1)
	}
	return predictDense(X, en.coef, en.intercept, r, c), nil
}

// Coefficients returns a copy of the fitted coefficients on the original
// predictor scale.
func (en *ElasticNet) Coefficients() []float64 {
	if en.coef == nil {
		return nil
	}
	out := make([]float64, len(en.coef))
	copy(out, en.coef)
	return out
}

// Intercept returns the fitted intercept.
func (en *ElasticNet) Intercept() float64 {
	return en.intercept
}

// NumNonZero counts coefficients that the penalty did not shrink to
// exactly zero.
func (en *ElasticNet) NumNonZero() int {
	n := 0
	for _, b := range en.coef {
		if b != 0 {
			n++
		}
	}
	return n
}

// IsFitted reports whether Fit has completed.
func (en *ElasticNet) IsFitted() bool {
	return en.state.IsFitted()
}

// ===========================================================================
//
//	Penalty grid and regularization path
//
// ===========================================================================

// GeometricGrid builds count penalties spaced geometrically from 10^maxExp
// down to 10^minExp, the decreasing order the path solver warm-starts
// along.
func GeometricGrid(maxExp, minExp float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, errors.NewValidationError("count", "grid needs at least two points", count)
	}
	if maxExp <= minExp {
		return nil, errors.NewValidationError("maxExp", "grid must decrease", maxExp)
	}
	grid := make([]float64, count)
	step := (maxExp - minExp) / float64(count-1)
	for i := range grid {
		grid[i] = math.Pow(10, maxExp-float64(i)*step)
	}
	return grid, nil
}

// ValidateGrid checks that a penalty grid is non-empty, strictly
// decreasing, and non-negative, with zero permitted only as the final
// entry.
func ValidateGrid(lambdas []float64) error {
	if len(lambdas) == 0 {
		return errors.NewValueError("ValidateGrid", "empty penalty grid")
	}
	for i, l := range lambdas {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return errors.NewNumericalInstabilityError("penalty grid", lambdas)
		}
		if l < 0 {
			return errors.NewValidationError("lambda", "must be non-negative", l)
		}
		if l == 0 && i != len(lambdas)-1 {
			return errors.NewValueError("ValidateGrid", "zero penalty only allowed as the final grid point")
		}
		if i > 0 && lambdas[i] >= lambdas[i-1] {
			return errors.NewValueError("ValidateGrid", "penalty grid must be strictly decreasing")
		}
	}
	return nil
}

// Path holds per-penalty fits along a regularization path, coefficients on
// the original predictor scale.
type Path struct {
	Lambdas    []float64
	L1Ratio    float64
	Coefs      [][]float64
	Intercepts []float64
}

// FitPath fits the model at every penalty in lambdas, warm-starting each
// coordinate-descent solve from the previous (larger) penalty's solution.
func FitPath(X mat.Matrix, y *mat.VecDense, lambdas []float64, l1Ratio float64, opts ...Option) (*Path, error) {
	if err := ValidateGrid(lambdas); err != nil {
		return nil, err
	}
	if l1Ratio < 0 || l1Ratio > 1 {
		return nil, errors.NewValidationError("l1Ratio", "must be in [0, 1]", l1Ratio)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("FitPath", "empty data", errors.ErrEmptyData)
	}

	cfg := &ElasticNet{maxIter: 1000, tol: 1e-7}
	for _, opt := range opts {
		opt(cfg)
	}

	std := newStandardized(X, y)
	path := &Path{
		Lambdas:    lambdas,
		L1Ratio:    l1Ratio,
		Coefs:      make([][]float64, len(lambdas)),
		Intercepts: make([]float64, len(lambdas)),
	}

	var warm []float64
	for i, lambda := range lambdas {
		switch {
		case lambda == 0:
			ols := NewOLS()
			if err := ols.Fit(X, y); err != nil {
				return nil, err
			}
			path.Coefs[i] = ols.Coefficients()
			path.Intercepts[i] = ols.Intercept()
			continue
		case l1Ratio == 0:
			beta, err := ridgeSolve(std, lambda)
			if err != nil {
				return nil, err
			}
			path.Coefs[i], path.Intercepts[i] = std.unstandardize(beta)
		default:
			beta, iters, converged := coordinateDescent(std, lambda, l1Ratio, warm, cfg.maxIter, cfg.tol)
			if !converged {
				errors.Warn(errors.NewConvergenceWarning("ElasticNet path", iters, ""))
			}
			warm = beta
			path.Coefs[i], path.Intercepts[i] = std.unstandardize(beta)
		}
		if err := errors.CheckVector("FitPath coefficients", path.Coefs[i]); err != nil {
			return nil, err
		}
	}
	return path, nil
}

// PredictAt returns fitted values for X using the path entry at idx.
func (p *Path) PredictAt(X mat.Matrix, idx int) (*mat.VecDense, error) {
	if idx < 0 || idx >= len(p.Lambdas) {
		return nil, errors.NewValidationError("idx", "outside the fitted path", idx)
	}
	r, c := X.Dims()
	if c != len(p.Coefs[idx]) {
		return nil, errors.NewDimensionError("Path.PredictAt", len(p.Coefs[idx]), c, 1)
	}
	return predictDense(X, p.Coefs[idx], p.Intercepts[idx], r, c), nil
}

// CrossValidateLambda estimates mean k-fold MSE at every penalty in
// lambdas and returns the resulting validation curve. The caller selects
// the penalty via CVCurve.ArgMin.
func CrossValidateLambda(X mat.Matrix, y *mat.VecDense, lambdas []float64, l1Ratio float64, kf *modelselect.KFold, opts ...Option) (*modelselect.CVCurve, error) {
	if err := ValidateGrid(lambdas); err != nil {
		return nil, err
	}
	n, _ := X.Dims()
	folds, err := kf.Split(n)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, len(lambdas))
	for _, fold := range folds {
		trainX := modelselect.Take(X, fold.TrainIndices)
		trainY := modelselect.TakeVec(y, fold.TrainIndices)
		testX := modelselect.Take(X, fold.TestIndices)
		testY := modelselect.TakeVec(y, fold.TestIndices)

		path, err := FitPath(trainX, trainY, lambdas, l1Ratio, opts...)
		if err != nil {
			return nil, err
		}
		for li := range lambdas {
			pred, err := path.PredictAt(testX, li)
			if err != nil {
				return nil, err
			}
			var se float64
			for i := 0; i < testY.Len(); i++ {
				d := testY.AtVec(i) - pred.AtVec(i)
				se += d * d
			}
			sums[li] += se / float64(testY.Len())
		}
	}

	curve := &modelselect.CVCurve{
		Values: append([]float64(nil), lambdas...),
		Errors: make([]float64, len(lambdas)),
	}
	for i := range sums {
		curve.Errors[i] = sums[i] / float64(len(folds))
	}
	return curve, nil
}

// ===========================================================================
//
//	Solvers
//
// ===========================================================================

// standardized holds a training design standardized to zero mean and unit
// (population) variance per column, with the target centered.
type standardized struct {
	Xs     *mat.Dense
	yc     []float64
	xMean  []float64
	xScale []float64
	yMean  float64
	n, p   int
}

func newStandardized(X mat.Matrix, y *mat.VecDense) *standardized {
	n, p := X.Dims()
	std := &standardized{
		xMean:  make([]float64, p),
		xScale: make([]float64, p),
		n:      n,
		p:      p,
	}

	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += X.At(i, j)
		}
		std.xMean[j] = sum / float64(n)
	}
	for j := 0; j < p; j++ {
		var ss float64
		for i := 0; i < n; i++ {
			d := X.At(i, j) - std.xMean[j]
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(n))
		if sd == 0 {
			sd = 1
		}
		std.xScale[j] = sd
	}

	std.Xs = mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			std.Xs.Set(i, j, (X.At(i, j)-std.xMean[j])/std.xScale[j])
		}
	}

	var ySum float64
	for i := 0; i < n; i++ {
		ySum += y.AtVec(i)
	}
	std.yMean = ySum / float64(n)
	std.yc = make([]float64, n)
	for i := 0; i < n; i++ {
		std.yc[i] = y.AtVec(i) - std.yMean
	}
	return std
}

// unstandardize maps standardized-space coefficients back to the original
// predictor scale and recovers the intercept.
func (s *standardized) unstandardize(beta []float64) (coef []float64, intercept float64) {
	coef = make([]float64, s.p)
	intercept = s.yMean
	for j := 0; j < s.p; j++ {
		coef[j] = beta[j] / s.xScale[j]
		intercept -= coef[j] * s.xMean[j]
	}
	return coef, intercept
}

// ridgeSolve solves (XᵀX/n + λI)β = Xᵀy/n on standardized data via
// Cholesky; λ > 0 keeps the system positive definite.
func ridgeSolve(std *standardized, lambda float64) ([]float64, error) {
	p := std.p
	gram := mat.NewSymDense(p, nil)
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			var dot float64
			for i := 0; i < std.n; i++ {
				dot += std.Xs.At(i, j) * std.Xs.At(i, k)
			}
			v := dot / float64(std.n)
			if j == k {
				v += lambda
			}
			gram.SetSym(j, k, v)
		}
	}

	rhs := mat.NewVecDense(p, nil)
	for j := 0; j < p; j++ {
		var dot float64
		for i := 0; i < std.n; i++ {
			dot += std.Xs.At(i, j) * std.yc[i]
		}
		rhs.SetVec(j, dot/float64(std.n))
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return nil, errors.NewModelError("ridgeSolve", "singular matrix", errors.ErrSingularMatrix)
	}
	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, rhs); err != nil {
		return nil, errors.NewModelError("ridgeSolve", "solve failed", err)
	}

	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		beta[j] = sol.AtVec(j)
	}
	return beta, nil
}

// coordinateDescent runs cyclic coordinate descent with soft-thresholding
// on standardized data. warm seeds the coefficients when non-nil.
func coordinateDescent(std *standardized, lambda, l1Ratio float64, warm []float64, maxIter int, tol float64) (beta []float64, iters int, converged bool) {
	n, p := std.n, std.p
	beta = make([]float64, p)
	if warm != nil {
		copy(beta, warm)
	}

	// Residual for the current coefficients.
	resid := make([]float64, n)
	copy(resid, std.yc)
	for j := 0; j < p; j++ {
		if beta[j] == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			resid[i] -= std.Xs.At(i, j) * beta[j]
		}
	}

	denom := 1 + lambda*(1-l1Ratio)
	thresh := lambda * l1Ratio

	for iter := 0; iter < maxIter; iter++ {
		var maxDelta float64
		for j := 0; j < p; j++ {
			old := beta[j]
			// Partial residual correlation; columns have unit variance, so
			// the unpenalized update is rho itself.
			var dot float64
			for i := 0; i < n; i++ {
				dot += std.Xs.At(i, j) * resid[i]
			}
			rho := dot/float64(n) + old

			beta[j] = softThreshold(rho, thresh) / denom
			if beta[j] != old {
				diff := old - beta[j]
				for i := 0; i < n; i++ {
					resid[i] += std.Xs.At(i, j) * diff
				}
				if d := math.Abs(diff); d > maxDelta {
					maxDelta = d
				}
			}
		}
		if maxDelta < tol {
			return beta, iter + 1, true
		}
	}
	return beta, maxIter, false
}

func softThreshold(z, gamma float64) float64 {
	switch {
	case z > gamma:
		return z - gamma
	case z < -gamma:
		return z + gamma
	default:
		return 0
	}
}

func predictDense(X mat.Matrix, coef []float64, intercept float64, r, c int) *mat.VecDense {
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * coef[j]
		}
		out.SetVec(i, pred)
	}
	return out
}
