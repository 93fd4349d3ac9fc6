package projection

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/core/model"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
	"github.com/roshansmehta/MLB-salary-predictor/preprocessing"
)

// PLS is a single-target partial-least-squares regression fitted by
// NIPALS. Components are extracted to maximize covariance with the
// target, so far fewer are typically needed than PCR requires for the
// same accuracy.
type PLS struct {
	state       *model.StateManager
	nComponents int

	scaler    *preprocessing.StandardScaler
	coef      []float64 // on the standardized scale
	yMean     float64
	nFeatures int
}

// NewPLS creates an unfitted PLS model with the given component count.
func NewPLS(nComponents int) *PLS {
	return &PLS{
		state:       model.NewStateManager(),
		nComponents: nComponents,
		scaler:      preprocessing.NewStandardScaler(),
	}
}

// NComponents returns the configured component count.
func (p *PLS) NComponents() int {
	return p.nComponents
}

// Fit extracts nComponents NIPALS components from the standardized
// predictors and the centered target.
func (p *PLS) Fit(X mat.Matrix, y *mat.VecDense) error {
	n, c := X.Dims()
	if n == 0 || c == 0 {
		return errors.NewModelError("PLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError("PLS.Fit", n, y.Len(), 0)
	}
	if p.nComponents < 1 || p.nComponents > c {
		return errors.NewValidationError("nComponents", "must be in [1, feature count]", p.nComponents)
	}

	Xs, err := p.scaler.FitTransform(X)
	if err != nil {
		return err
	}

	var ySum float64
	for i := 0; i < n; i++ {
		ySum += y.AtVec(i)
	}
	p.yMean = ySum / float64(n)
	yc := make([]float64, n)
	for i := 0; i < n; i++ {
		yc[i] = y.AtVec(i) - p.yMean
	}

	// Working copies deflated component by component.
	E := mat.DenseCopyOf(Xs)
	f := append([]float64(nil), yc...)

	W := mat.NewDense(c, p.nComponents, nil) // weights
	P := mat.NewDense(c, p.nComponents, nil) // loadings
	q := make([]float64, p.nComponents)      // target loadings

	for m := 0; m < p.nComponents; m++ {
		// w ∝ Eᵀf
		w := make([]float64, c)
		var wNorm float64
		for j := 0; j < c; j++ {
			var dot float64
			for i := 0; i < n; i++ {
				dot += E.At(i, j) * f[i]
			}
			w[j] = dot
			wNorm += dot * dot
		}
		wNorm = math.Sqrt(wNorm)
		if wNorm < 1e-12 {
			return errors.NewValueError("PLS.Fit", "predictors exhausted before reaching the requested component count")
		}
		for j := 0; j < c; j++ {
			w[j] /= wNorm
		}

		// Scores t = Ew
		t := make([]float64, n)
		var tt float64
		for i := 0; i < n; i++ {
			var dot float64
			for j := 0; j < c; j++ {
				dot += E.At(i, j) * w[j]
			}
			t[i] = dot
			tt += dot * dot
		}
		if tt < 1e-12 {
			return errors.NewValueError("PLS.Fit", "degenerate score vector")
		}

		// Loadings p = Eᵀt/tᵀt and q = fᵀt/tᵀt
		pl := make([]float64, c)
		for j := 0; j < c; j++ {
			var dot float64
			for i := 0; i < n; i++ {
				dot += E.At(i, j) * t[i]
			}
			pl[j] = dot / tt
		}
		var qm float64
		for i := 0; i < n; i++ {
			qm += f[i] * t[i]
		}
		qm /= tt

		// Deflate.
		for i := 0; i < n; i++ {
			for j := 0; j < c; j++ {
				E.Set(i, j, E.At(i, j)-t[i]*pl[j])
			}
			f[i] -= qm * t[i]
		}

		for j := 0; j < c; j++ {
			W.Set(j, m, w[j])
			P.Set(j, m, pl[j])
		}
		q[m] = qm
	}

	// B = W(PᵀW)⁻¹q collapses the component pipeline into one
	// standardized-scale coefficient vector.
	var ptw mat.Dense
	ptw.Mul(P.T(), W)
	var ptwInv mat.Dense
	if err := ptwInv.Inverse(&ptw); err != nil {
		return errors.NewModelError("PLS.Fit", "singular loading system", errors.ErrSingularMatrix)
	}
	qVec := mat.NewVecDense(p.nComponents, q)
	var tmp mat.VecDense
	tmp.MulVec(&ptwInv, qVec)
	var beta mat.VecDense
	beta.MulVec(W, &tmp)

	p.coef = make([]float64, c)
	for j := 0; j < c; j++ {
		p.coef[j] = beta.AtVec(j)
	}
	if err := errors.CheckVector("PLS.Fit coefficients", p.coef); err != nil {
		return err
	}

	p.nFeatures = c
	p.state.SetDimensions(c, n)
	p.state.SetFitted()
	return nil
}

// Predict applies the training standardization and the collapsed
// coefficient vector to X.
func (p *PLS) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := p.state.RequireFitted("PLS", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PLS.Predict", p.nFeatures, c, 1)
	}

	Xs, err := p.scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := p.yMean
		for j := 0; j < c; j++ {
			pred += Xs.At(i, j) * p.coef[j]
		}
		out.SetVec(i, pred)
	}
	return out, nil
}

// IsFitted reports whether Fit has completed.
func (p *PLS) IsFitted() bool {
	return p.state.IsFitted()
}
