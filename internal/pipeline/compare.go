package pipeline

import "github.com/roshansmehta/MLB-salary-predictor/pkg/errors"

// comparisonOrder fixes how equal test errors resolve: earlier entries
// win ties, preferring the more interpretable model.
var comparisonOrder = []string{"subset", "lasso", "ridge", "pls", "pcr"}

// compare picks the model with the smallest test MSE. Ties resolve by
// comparisonOrder.
func compare(models []ModelResult) (ModelResult, error) {
	if len(models) == 0 {
		return ModelResult{}, errors.NewValueError("pipeline.compare", "no models to compare")
	}

	byName := make(map[string]ModelResult, len(models))
	for _, m := range models {
		byName[m.Name] = m
	}

	var best ModelResult
	found := false
	for _, name := range comparisonOrder {
		m, ok := byName[name]
		if !ok {
			continue
		}
		if !found || m.TestMSE < best.TestMSE {
			best = m
			found = true
		}
	}
	if !found {
		return ModelResult{}, errors.NewValueError("pipeline.compare", "no recognized model names")
	}
	return best, nil
}
