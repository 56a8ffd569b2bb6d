package search

import "fmt"

// Grid exhaustively evaluates the cartesian product of the space's value
// lists and returns the best configuration by test R². Enumeration order is
// deterministic (odometer over the parameter order), and on equal scores
// the earlier configuration wins.
func Grid(f Factory, sp Space, d Data, seed int64) (*Result, error) {
	if err := sp.validate(); err != nil {
		return nil, fmt.Errorf("grid search: %w", err)
	}

	counters := make([]int, len(sp))
	best := &Result{Score: negInf}
	for {
		point := make(Point, len(sp))
		for i, param := range sp {
			point[param.Name] = param.Values[counters[i]]
		}

		model, score, err := evaluate(f, point, d, seed)
		if err != nil {
			return nil, fmt.Errorf("grid search: %w", err)
		}
		best.Evals++
		if score > best.Score {
			best.Model, best.Point, best.Score = model, point, score
		}

		// odometer increment; last parameter spins fastest
		i := len(sp) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(sp[i].Values) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return best, nil
}
