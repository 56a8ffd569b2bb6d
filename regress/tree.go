package regress

import (
	"fmt"
	"sort"
)

// TreeConfig holds the hyperparameters of a single regression tree.
// Zero values are replaced with defaults by NewTree.
type TreeConfig struct {
	// MaxDepth limits the tree depth. Default 6.
	MaxDepth int
	// MinLeaf is the minimum number of samples on each side of a split.
	// Default 2.
	MinLeaf int
}

func (c TreeConfig) withDefaults() TreeConfig {
	if c.MaxDepth == 0 {
		c.MaxDepth = 6
	}
	if c.MinLeaf == 0 {
		c.MinLeaf = 2
	}
	return c
}

// Tree is a CART regression tree splitting on variance reduction.
type Tree struct {
	Config TreeConfig

	root      *treeNode
	nFeatures int
	imp       []float64
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// NewTree creates an unfitted tree with defaults filled in.
func NewTree(cfg TreeConfig) *Tree {
	return &Tree{Config: cfg.withDefaults()}
}

// Fit grows the tree on the training rows.
func (t *Tree) Fit(X [][]float64, y []float64) error {
	nFeatures, err := checkTrainingData(X, y)
	if err != nil {
		return fmt.Errorf("fit tree: %w", err)
	}
	t.nFeatures = nFeatures
	t.imp = make([]float64, nFeatures)

	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.grow(X, y, idx, 0)
	return nil
}

func mean(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

// sse returns the sum of squared errors around the mean for the subset.
func sse(y []float64, idx []int) float64 {
	m := mean(y, idx)
	var s float64
	for _, i := range idx {
		d := y[i] - m
		s += d * d
	}
	return s
}

func (t *Tree) grow(X [][]float64, y []float64, idx []int, depth int) *treeNode {
	if depth >= t.Config.MaxDepth || len(idx) < 2*t.Config.MinLeaf {
		return &treeNode{leaf: true, value: mean(y, idx)}
	}

	parentSSE := sse(y, idx)
	if parentSSE == 0 {
		return &treeNode{leaf: true, value: mean(y, idx)}
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	var bestLeft, bestRight []int

	order := make([]int, len(idx))
	for feature := 0; feature < t.nFeatures; feature++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][feature] < X[order[b]][feature]
		})

		// Scan candidate splits with running sums: left side is order[:k].
		var sumL, sumSqL float64
		sumR, sumSqR := 0.0, 0.0
		for _, i := range order {
			sumR += y[i]
			sumSqR += y[i] * y[i]
		}
		for k := 1; k < len(order); k++ {
			v := y[order[k-1]]
			sumL += v
			sumSqL += v * v
			sumR -= v
			sumSqR -= v * v

			if k < t.Config.MinLeaf || len(order)-k < t.Config.MinLeaf {
				continue
			}
			lo, hi := X[order[k-1]][feature], X[order[k]][feature]
			if lo == hi {
				continue
			}

			nl, nr := float64(k), float64(len(order)-k)
			sseL := sumSqL - sumL*sumL/nl
			sseR := sumSqR - sumR*sumR/nr
			gain := parentSSE - sseL - sseR
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (lo + hi) / 2
				bestLeft = append(bestLeft[:0], order[:k]...)
				bestRight = append(bestRight[:0], order[k:]...)
			}
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: mean(y, idx)}
	}
	t.imp[bestFeature] += bestGain

	left := append([]int(nil), bestLeft...)
	right := append([]int(nil), bestRight...)
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      t.grow(X, y, left, depth+1),
		right:     t.grow(X, y, right, depth+1),
	}
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// Predict returns one prediction per row. An unfitted tree predicts zeros.
func (t *Tree) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if t.root == nil {
		return out
	}
	for i, row := range X {
		out[i] = t.root.predict(row)
	}
	return out
}

// Importances returns the normalized variance-reduction importances.
func (t *Tree) Importances() []float64 {
	out := make([]float64, len(t.imp))
	copy(out, t.imp)
	return normalize(out)
}

// rawImportances exposes the unnormalized gains for ensemble aggregation.
func (t *Tree) rawImportances() []float64 { return t.imp }
