// Package regress implements the regression models the search bank tunes:
// a CART regression tree and two ensembles built on it, bootstrap bagging
// and gradient boosting. Models accept raw feature rows and are scored by
// the coefficient of determination on held-out data.
package regress

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Model is the minimal contract the search strategies and the forecaster
// need from a regressor.
type Model interface {
	// Fit trains on feature rows X and targets y of equal length.
	Fit(X [][]float64, y []float64) error
	// Predict returns one prediction per row of X.
	Predict(X [][]float64) []float64
	// Importances returns the normalized per-feature importance, summing
	// to one (all zeros if the model never split).
	Importances() []float64
}

// RSquared scores a fitted model on held-out data by the coefficient of
// determination.
func RSquared(m Model, X [][]float64, y []float64) float64 {
	preds := m.Predict(X)
	return stat.RSquaredFrom(preds, y, nil)
}

func checkTrainingData(X [][]float64, y []float64) (nFeatures int, err error) {
	if len(X) == 0 {
		return 0, fmt.Errorf("empty training set")
	}
	if len(X) != len(y) {
		return 0, fmt.Errorf("feature rows (%d) and targets (%d) differ", len(X), len(y))
	}
	nFeatures = len(X[0])
	if nFeatures == 0 {
		return 0, fmt.Errorf("rows have no features")
	}
	for i, row := range X {
		if len(row) != nFeatures {
			return 0, fmt.Errorf("row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}
	return nFeatures, nil
}

// normalize scales the slice in place so it sums to one, leaving an
// all-zero slice untouched.
func normalize(v []float64) []float64 {
	var total float64
	for _, x := range v {
		total += x
	}
	if total == 0 {
		return v
	}
	for i := range v {
		v[i] /= total
	}
	return v
}
