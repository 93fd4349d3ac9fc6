// Package salary predicts Major League Baseball salaries from 1986-87
// player-season statistics by fitting and comparing five regression
// techniques: best-subset selection, ridge regression, the lasso,
// principal component regression, and partial least squares.
//
// The top-level packages form a small modeling toolkit:
//
//   - linear: ordinary least squares and the elastic-net family
//   - subset: best-subset search with validation-based size selection
//   - projection: principal component and partial least squares regression
//   - preprocessing: feature standardization
//   - modelselect: train/test splits and k-fold cross-validation
//   - metrics: regression error measures
//
// The internal packages wire the toolkit into the analysis itself:
// dataset loading and cleaning, the exploratory report, the pipeline
// that tunes and compares the models, and the run-history store.
//
// # Quick Start
//
//	salary run --data Hitters.csv --out out/
//
// fits all five models and writes a report, the diagnostic figures,
// and a SQLite record of the run. See examples/quickstart for using
// the packages directly.
package salary
