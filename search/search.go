// Package search tunes the model bank's hyperparameters with three
// strategies (exhaustive grid, seeded random sampling, Bayesian
// optimization on a Gaussian-process surrogate) and ranks the resulting
// candidates on a leaderboard by held-out R².
package search

import (
	"fmt"

	"github.com/rogerpaguaga/tarea-curso-ML/regress"
)

// Param is one tunable hyperparameter. Values carries the grid points in
// ascending order; random and Bayesian search sample the closed range
// [Values[0], Values[last]].
type Param struct {
	Name    string
	Values  []float64
	Integer bool
}

// Space is an ordered set of hyperparameters.
type Space []Param

// Point is a concrete hyperparameter assignment, keyed by Param.Name.
// Integer parameters are stored as whole-valued floats.
type Point map[string]float64

// Int reads an integer parameter from the point.
func (p Point) Int(name string) int { return int(p[name]) }

// Factory builds an unfitted model from a hyperparameter point. The seed
// keeps stochastic models reproducible across a search run.
type Factory func(p Point, seed int64) regress.Model

// Data is the fixed train/test split every candidate is evaluated on.
type Data struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64
}

// Result is the winning configuration of one search run.
type Result struct {
	Model regress.Model
	Point Point
	Score float64 // test-set R²
	Evals int
}

// evaluate fits one configuration and scores it on the test set. Any fit
// failure aborts the whole search; candidates are not isolated from each
// other.
func evaluate(f Factory, p Point, d Data, seed int64) (regress.Model, float64, error) {
	model := f(p, seed)
	if err := model.Fit(d.XTrain, d.YTrain); err != nil {
		return nil, 0, fmt.Errorf("fit %v: %w", p, err)
	}
	return model, regress.RSquared(model, d.XTest, d.YTest), nil
}

func (s Space) bounds(i int) (lo, hi float64) {
	vals := s[i].Values
	return vals[0], vals[len(vals)-1]
}

func (s Space) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty search space")
	}
	for _, p := range s {
		if len(p.Values) == 0 {
			return fmt.Errorf("parameter %q has no values", p.Name)
		}
	}
	return nil
}
