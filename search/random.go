package search

import (
	"fmt"
	"math"
	"math/rand"
)

var negInf = math.Inf(-1)

// Random evaluates budget configurations drawn uniformly from each
// parameter's range and returns the best by test R². The same seed yields
// the same sequence of draws.
func Random(f Factory, sp Space, d Data, budget int, seed int64) (*Result, error) {
	if err := sp.validate(); err != nil {
		return nil, fmt.Errorf("random search: %w", err)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("random search: budget %d must be positive", budget)
	}

	rng := rand.New(rand.NewSource(seed))
	best := &Result{Score: negInf}
	for iter := 0; iter < budget; iter++ {
		point := make(Point, len(sp))
		for i, param := range sp {
			lo, hi := sp.bounds(i)
			if param.Integer {
				point[param.Name] = float64(int(lo) + rng.Intn(int(hi)-int(lo)+1))
			} else {
				point[param.Name] = lo + rng.Float64()*(hi-lo)
			}
		}

		model, score, err := evaluate(f, point, d, seed)
		if err != nil {
			return nil, fmt.Errorf("random search: %w", err)
		}
		best.Evals++
		if score > best.Score {
			best.Model, best.Point, best.Score = model, point, score
		}
	}
	return best, nil
}
