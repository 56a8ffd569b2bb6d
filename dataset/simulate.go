package dataset

import (
	"math"
	"math/rand"
	"time"
)

// Simulate builds a deterministic synthetic monthly series of n observations
// starting at 2010-01. Price carries a slow upward trend plus an annual
// seasonal swing and noise; production and export follow their own trends so
// the production/export ratio stays informative for the price.
func Simulate(n int, seed int64) *Table {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

	t := &Table{Rows: make([]Observation, 0, n)}
	for i := 0; i < n; i++ {
		date := start.AddDate(0, i, 0)
		season := math.Sin(2 * math.Pi * float64(i%12) / 12)

		production := 900 + 1.5*float64(i) + 60*season + rng.NormFloat64()*25
		export := 400 + 0.9*float64(i) + 25*season + rng.NormFloat64()*12
		if export < 1 {
			export = 1
		}
		if production < 1 {
			production = 1
		}

		// Price responds to the supply balance: tighter exports relative to
		// production push the price up.
		ratio := production / export
		price := 2.1 + 0.004*float64(i) + 0.35*(ratio-2.25) + 0.08*season + rng.NormFloat64()*0.05

		t.Rows = append(t.Rows, Observation{
			Date:       date,
			Price:      price,
			Production: production,
			Export:     export,
		})
	}
	return t
}
