package regress

import (
	"fmt"
	"math/rand"
	"time"
)

// BaggingConfig holds the bagging ensemble hyperparameters. Zero values are
// replaced with defaults by NewBagging.
type BaggingConfig struct {
	// NTrees is the number of bootstrap trees. Default 50.
	NTrees int
	// SampleRatio is the bootstrap sample size as a fraction of the
	// training set. Default 1.0.
	SampleRatio float64
	// MaxDepth and MinLeaf configure each base tree.
	MaxDepth int
	MinLeaf  int
	// Seed controls bootstrap sampling. If zero, a time-based seed is used.
	Seed int64
}

func (c BaggingConfig) withDefaults() BaggingConfig {
	if c.NTrees == 0 {
		c.NTrees = 50
	}
	if c.SampleRatio == 0 {
		c.SampleRatio = 1.0
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Bagging averages bootstrap-resampled regression trees.
type Bagging struct {
	Config BaggingConfig

	trees []*Tree
	imp   []float64
}

// NewBagging creates an unfitted bagging ensemble with defaults filled in.
func NewBagging(cfg BaggingConfig) *Bagging {
	return &Bagging{Config: cfg.withDefaults()}
}

// Fit trains NTrees trees, each on a bootstrap resample of the rows.
func (b *Bagging) Fit(X [][]float64, y []float64) error {
	nFeatures, err := checkTrainingData(X, y)
	if err != nil {
		return fmt.Errorf("fit bagging: %w", err)
	}

	rng := rand.New(rand.NewSource(b.Config.Seed))
	sampleN := int(float64(len(X)) * b.Config.SampleRatio)
	if sampleN < 1 {
		sampleN = 1
	}

	b.trees = make([]*Tree, 0, b.Config.NTrees)
	b.imp = make([]float64, nFeatures)
	for i := 0; i < b.Config.NTrees; i++ {
		bx := make([][]float64, sampleN)
		by := make([]float64, sampleN)
		for j := 0; j < sampleN; j++ {
			k := rng.Intn(len(X))
			bx[j] = X[k]
			by[j] = y[k]
		}
		tree := NewTree(TreeConfig{MaxDepth: b.Config.MaxDepth, MinLeaf: b.Config.MinLeaf})
		if err := tree.Fit(bx, by); err != nil {
			return fmt.Errorf("fit bagging tree %d: %w", i, err)
		}
		b.trees = append(b.trees, tree)
		for f, g := range tree.rawImportances() {
			b.imp[f] += g
		}
	}
	return nil
}

// Predict averages the member tree predictions.
func (b *Bagging) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if len(b.trees) == 0 {
		return out
	}
	for _, tree := range b.trees {
		for i, p := range tree.Predict(X) {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(b.trees))
	}
	return out
}

// Importances returns the normalized aggregate importances over all trees.
func (b *Bagging) Importances() []float64 {
	out := make([]float64, len(b.imp))
	copy(out, b.imp)
	return normalize(out)
}
