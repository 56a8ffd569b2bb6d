package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rogerpaguaga/tarea-curso-ML/regress"
)

// Candidate is one (model family, search strategy) entry on the
// leaderboard with its fitted model and held-out score.
type Candidate struct {
	Family   string // "bagging" or "boosting"
	Strategy string // "grid", "random" or "bayes"
	Point    Point
	Model    regress.Model
	R2       float64
	Evals    int
}

// Name labels the candidate as family/strategy.
func (c Candidate) Name() string { return c.Family + "/" + c.Strategy }

// Leaderboard is the ranked model bank, best first.
type Leaderboard []Candidate

// Round3 rounds a score to three decimals, the granularity the ranking
// compares at.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Rank sorts candidates descending by rounded R². The sort is stable, so
// ties keep their insertion order.
func Rank(candidates []Candidate) Leaderboard {
	lb := append(Leaderboard(nil), candidates...)
	sort.SliceStable(lb, func(i, j int) bool {
		return Round3(lb[i].R2) > Round3(lb[j].R2)
	})
	return lb
}

// Best returns the top-ranked candidate.
func (lb Leaderboard) Best() Candidate { return lb[0] }

// String renders the leaderboard as an aligned console table.
func (lb Leaderboard) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-20s %8s %6s\n", "rank", "candidate", "test R²", "evals")
	for i, c := range lb {
		fmt.Fprintf(&b, "%-4d %-20s %8.3f %6d\n", i+1, c.Name(), Round3(c.R2), c.Evals)
	}
	return b.String()
}
