package regress

import (
	"fmt"
	"math/rand"
	"time"
)

// BoostingConfig holds the gradient-boosting hyperparameters. Zero values
// are replaced with defaults by NewBoosting.
type BoostingConfig struct {
	// NStages is the number of boosting stages. Default 100.
	NStages int
	// LearningRate shrinks each stage's contribution. Default 0.1.
	LearningRate float64
	// MaxDepth and MinLeaf configure each stage tree. Boosting defaults to
	// shallow trees (depth 3).
	MaxDepth int
	MinLeaf  int
	// SubsampleRatio draws a random row subset per stage when below 1.
	// Default 1.0 (no subsampling).
	SubsampleRatio float64
	// Seed controls stage subsampling. If zero, a time-based seed is used.
	Seed int64
}

func (c BoostingConfig) withDefaults() BoostingConfig {
	if c.NStages == 0 {
		c.NStages = 100
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 3
	}
	if c.SubsampleRatio == 0 {
		c.SubsampleRatio = 1.0
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Boosting is gradient boosting with squared loss: each stage fits a
// shallow tree to the current residuals.
type Boosting struct {
	Config BoostingConfig

	base   float64
	stages []*Tree
	imp    []float64
}

// NewBoosting creates an unfitted boosting ensemble with defaults filled in.
func NewBoosting(cfg BoostingConfig) *Boosting {
	return &Boosting{Config: cfg.withDefaults()}
}

// Fit runs NStages rounds of residual fitting.
func (g *Boosting) Fit(X [][]float64, y []float64) error {
	nFeatures, err := checkTrainingData(X, y)
	if err != nil {
		return fmt.Errorf("fit boosting: %w", err)
	}

	var sum float64
	for _, v := range y {
		sum += v
	}
	g.base = sum / float64(len(y))

	current := make([]float64, len(y))
	for i := range current {
		current[i] = g.base
	}
	residual := make([]float64, len(y))

	rng := rand.New(rand.NewSource(g.Config.Seed))
	g.stages = make([]*Tree, 0, g.Config.NStages)
	g.imp = make([]float64, nFeatures)

	for stage := 0; stage < g.Config.NStages; stage++ {
		for i := range y {
			residual[i] = y[i] - current[i]
		}

		sx, sy := X, residual
		if g.Config.SubsampleRatio < 1 {
			n := int(float64(len(X)) * g.Config.SubsampleRatio)
			if n < 2 {
				n = 2
			}
			perm := rng.Perm(len(X))[:n]
			sx = make([][]float64, n)
			sy = make([]float64, n)
			for j, k := range perm {
				sx[j] = X[k]
				sy[j] = residual[k]
			}
		}

		tree := NewTree(TreeConfig{MaxDepth: g.Config.MaxDepth, MinLeaf: g.Config.MinLeaf})
		if err := tree.Fit(sx, sy); err != nil {
			return fmt.Errorf("fit boosting stage %d: %w", stage, err)
		}
		g.stages = append(g.stages, tree)
		for f, gain := range tree.rawImportances() {
			g.imp[f] += gain
		}

		for i, p := range tree.Predict(X) {
			current[i] += g.Config.LearningRate * p
		}
	}
	return nil
}

// Predict sums the base value and the shrunken stage predictions.
func (g *Boosting) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = g.base
	}
	for _, tree := range g.stages {
		for i, p := range tree.Predict(X) {
			out[i] += g.Config.LearningRate * p
		}
	}
	return out
}

// Importances returns the normalized aggregate importances over all stages.
func (g *Boosting) Importances() []float64 {
	out := make([]float64, len(g.imp))
	copy(out, g.imp)
	return normalize(out)
}
