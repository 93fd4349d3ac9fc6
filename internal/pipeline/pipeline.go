// Package pipeline runs the full salary analysis: load and clean the
// data, report on it, tune five regression techniques on held-out
// splits, and compare their test errors.
package pipeline

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/internal/config"
	"github.com/roshansmehta/MLB-salary-predictor/internal/dataset"
	"github.com/roshansmehta/MLB-salary-predictor/internal/report"
	"github.com/roshansmehta/MLB-salary-predictor/linear"
	"github.com/roshansmehta/MLB-salary-predictor/metrics"
	"github.com/roshansmehta/MLB-salary-predictor/modelselect"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
	"github.com/roshansmehta/MLB-salary-predictor/projection"
	"github.com/roshansmehta/MLB-salary-predictor/subset"
)

// ModelResult is one technique's held-out error and selected tuning.
type ModelResult struct {
	Name       string
	TestMSE    float64
	TunedValue float64
	TunedLabel string
}

// Result collects everything one analysis run produces.
type Result struct {
	LoadReport dataset.LoadReport
	Summary    *report.Summary

	Subset       *subset.Selection
	SubsetCV     *subset.Selection
	LassoNonZero int

	Models []ModelResult
	Winner ModelResult
}

// Run executes the analysis described by cfg.
//
// Subset selection and the tuned models use two independently seeded
// train/test splits, so errors across the two families are measured on
// different test rows.
func Run(cfg config.Config, logger zerolog.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	design, y, res, err := prepare(cfg, logger)
	if err != nil {
		return nil, err
	}
	n, p := design.X.Dims()

	// Figure output never blocks the modeling stages.
	if cfg.Plots {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating output directory")
		}
		if err := saveExploratoryFigures(design, y, res.Summary, cfg.OutDir); err != nil {
			logger.Warn().Err(err).Msg("exploratory figures failed")
		}
	}

	kf := modelselect.NewKFold(cfg.Folds, cfg.CVSeed)

	// Subset selection on its own split.
	subsetMask, err := modelselect.TrainTestMask(n, cfg.TrainFraction, cfg.SubsetSeed)
	if err != nil {
		return nil, err
	}
	method, err := subset.ParseMethod(cfg.SubsetMethod)
	if err != nil {
		return nil, err
	}
	sel, err := subset.SelectByValidation(design.X, design.Columns, y, subsetMask, method, cfg.MaxSubsetSize)
	if err != nil {
		return nil, err
	}
	res.Subset = sel
	res.Models = append(res.Models, ModelResult{
		Name:       "subset",
		TestMSE:    sel.Curve.Errors[sel.Curve.ArgMin()],
		TunedValue: float64(sel.BestSize),
		TunedLabel: "size",
	})
	logger.Info().Int("size", sel.BestSize).
		Float64("test_mse", res.Models[0].TestMSE).
		Strs("columns", sel.Best.Columns).
		Msg("subset selection by validation set done")

	// The same size scan, chosen by k-fold cross-validation over all rows.
	selCV, err := subset.SelectByCV(design.X, design.Columns, y, kf, method, cfg.MaxSubsetSize)
	if err != nil {
		return nil, err
	}
	res.SubsetCV = selCV
	logger.Info().Int("size", selCV.BestSize).
		Float64("cv_mse", selCV.Curve.Errors[selCV.Curve.ArgMin()]).
		Strs("columns", selCV.Best.Columns).
		Msg("subset selection by cross-validation done")

	// The penalized and projection models share the second split.
	shrinkMask, err := modelselect.TrainTestMask(n, cfg.TrainFraction, cfg.ShrinkageSeed)
	if err != nil {
		return nil, err
	}
	trainIdx, testIdx := modelselect.MaskIndices(shrinkMask)
	Xtr := modelselect.Take(design.X, trainIdx)
	ytr := modelselect.TakeVec(y, trainIdx)
	Xte := modelselect.Take(design.X, testIdx)
	yte := modelselect.TakeVec(y, testIdx)

	grid, err := linear.GeometricGrid(cfg.Grid.MaxExp, cfg.Grid.MinExp, cfg.Grid.Count)
	if err != nil {
		return nil, err
	}

	for _, job := range []struct {
		name    string
		l1Ratio float64
	}{
		{"ridge", 0}, {"lasso", 1},
	} {
		mse, lambda, curve, err := tunePenalty(Xtr, ytr, Xte, yte, grid, job.l1Ratio, kf)
		if err != nil {
			return nil, errors.Wrapf(err, "tuning %s", job.name)
		}
		res.Models = append(res.Models, ModelResult{
			Name: job.name, TestMSE: mse, TunedValue: lambda, TunedLabel: "lambda",
		})
		logger.Info().Str("model", job.name).
			Float64("lambda", lambda).Float64("test_mse", mse).
			Msg("penalty tuned")
		if cfg.Plots {
			path := filepath.Join(cfg.OutDir, job.name+"_cv.png")
			if err := report.SaveCurve(curve.Values, curve.Errors, curve.ArgMin(),
				job.name+" cross-validation", "lambda", path, true); err != nil {
				logger.Warn().Err(err).Str("model", job.name).Msg("curve figure failed")
			}
		}
	}

	// Lasso refit on all rows for the sparsity report.
	lassoIdx := indexOf(res.Models, "lasso")
	fullLasso := linear.NewLasso(res.Models[lassoIdx].TunedValue)
	if err := fullLasso.Fit(design.X, y); err != nil {
		return nil, err
	}
	res.LassoNonZero = fullLasso.NumNonZero()
	logger.Info().Int("nonzero", res.LassoNonZero).Msg("lasso refit on all rows")

	maxComponents := cfg.MaxComponents
	if maxComponents <= 0 || maxComponents > p {
		maxComponents = p
	}
	for _, job := range []struct {
		name string
		make func(m int) projection.Regressor
	}{
		{"pls", func(m int) projection.Regressor { return projection.NewPLS(m) }},
		{"pcr", func(m int) projection.Regressor { return projection.NewPCR(m) }},
	} {
		mse, m, curve, err := tuneComponents(Xtr, ytr, Xte, yte, maxComponents, kf, job.make)
		if err != nil {
			return nil, errors.Wrapf(err, "tuning %s", job.name)
		}
		res.Models = append(res.Models, ModelResult{
			Name: job.name, TestMSE: mse, TunedValue: float64(m), TunedLabel: "components",
		})
		logger.Info().Str("model", job.name).
			Int("components", m).Float64("test_mse", mse).
			Msg("components tuned")
		if cfg.Plots {
			path := filepath.Join(cfg.OutDir, job.name+"_cv.png")
			if err := report.SaveCurve(curve.Values, curve.Errors, curve.ArgMin(),
				job.name+" cross-validation", "components", path, false); err != nil {
				logger.Warn().Err(err).Str("model", job.name).Msg("curve figure failed")
			}
		}
	}

	if cfg.Plots {
		path := filepath.Join(cfg.OutDir, "subset_validation.png")
		if err := report.SaveCurve(sel.Curve.Values, sel.Curve.Errors, sel.Curve.ArgMin(),
			"subset validation", "model size", path, false); err != nil {
			logger.Warn().Err(err).Msg("subset curve figure failed")
		}
		path = filepath.Join(cfg.OutDir, "subset_cv.png")
		if err := report.SaveCurve(selCV.Curve.Values, selCV.Curve.Errors, selCV.Curve.ArgMin(),
			"subset cross-validation", "model size", path, false); err != nil {
			logger.Warn().Err(err).Msg("subset curve figure failed")
		}
	}

	winner, err := compare(res.Models)
	if err != nil {
		return nil, err
	}
	res.Winner = winner
	logger.Info().Str("winner", winner.Name).
		Float64("test_mse", winner.TestMSE).
		Msg("model comparison done")
	return res, nil
}

// prepare loads, cleans, and augments the data and computes the
// exploratory summary.
func prepare(cfg config.Config, logger zerolog.Logger) (*dataset.DesignMatrix, *mat.VecDense, *Result, error) {
	records, loadReport, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info().Int("read", loadReport.RowsRead).
		Int("kept", loadReport.RowsKept).
		Int("dropped", loadReport.RowsDropped).
		Msg("dataset cleaned")

	records, err = dataset.WithCareerAverages(records)
	if err != nil {
		return nil, nil, nil, err
	}
	design, y, err := dataset.Build(records)
	if err != nil {
		return nil, nil, nil, err
	}
	summary, err := report.Summarize(design, y)
	if err != nil {
		return nil, nil, nil, err
	}
	return design, y, &Result{LoadReport: loadReport, Summary: summary}, nil
}

func saveExploratoryFigures(design *dataset.DesignMatrix, y *mat.VecDense, s *report.Summary, outDir string) error {
	if err := report.SaveHistograms(design, y, outDir); err != nil {
		return err
	}
	if err := report.SaveScatter(design, y, "CHits", outDir); err != nil {
		return err
	}
	return report.SaveCorrelationHeatmap(s, outDir)
}

// tunePenalty cross-validates lambda on the training rows, fits the
// winner on them, and scores it on the test rows.
func tunePenalty(Xtr mat.Matrix, ytr *mat.VecDense, Xte mat.Matrix, yte *mat.VecDense, grid []float64, l1Ratio float64, kf *modelselect.KFold) (mse, lambda float64, curve *modelselect.CVCurve, err error) {
	curve, err = linear.CrossValidateLambda(Xtr, ytr, grid, l1Ratio, kf)
	if err != nil {
		return 0, 0, nil, err
	}
	lambda = curve.Values[curve.ArgMin()]

	model := linear.NewElasticNet(lambda, l1Ratio)
	if err := model.Fit(Xtr, ytr); err != nil {
		return 0, 0, nil, err
	}
	pred, err := model.Predict(Xte)
	if err != nil {
		return 0, 0, nil, err
	}
	mse, err = metrics.MSE(yte, pred)
	return mse, lambda, curve, err
}

// tuneComponents cross-validates the component count on the training
// rows, fits the winner on them, and scores it on the test rows.
func tuneComponents(Xtr mat.Matrix, ytr *mat.VecDense, Xte mat.Matrix, yte *mat.VecDense, maxComponents int, kf *modelselect.KFold, make func(m int) projection.Regressor) (mse float64, m int, curve *modelselect.CVCurve, err error) {
	curve, err = projection.CrossValidateComponents(Xtr, ytr, maxComponents, kf, make)
	if err != nil {
		return 0, 0, nil, err
	}
	m = int(curve.Values[curve.ArgMin()])

	model := make(m)
	if err := model.Fit(Xtr, ytr); err != nil {
		return 0, 0, nil, err
	}
	pred, err := model.Predict(Xte)
	if err != nil {
		return 0, 0, nil, err
	}
	mse, err = metrics.MSE(yte, pred)
	return mse, m, curve, err
}

func indexOf(models []ModelResult, name string) int {
	for i, m := range models {
		if m.Name == name {
			return i
		}
	}
	return -1
}
