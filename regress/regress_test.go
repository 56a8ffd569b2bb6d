package regress

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synth builds a smooth nonlinear regression problem where the first
// feature carries most of the signal.
func synth(n int, seed int64) (X [][]float64, y []float64) {
	rng := rand.New(rand.NewSource(seed))
	X = make([][]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		a := rng.Float64()*4 - 2
		b := rng.Float64()*4 - 2
		c := rng.Float64()*4 - 2
		X[i] = []float64{a, b, c}
		y[i] = 3*a + math.Sin(2*a) + 0.3*b + rng.NormFloat64()*0.05
	}
	return X, y
}

func TestTreeFitsStepFunction(t *testing.T) {
	// a single split at x=0 should be recovered exactly
	X := [][]float64{{-2}, {-1.5}, {-1}, {-0.5}, {0.5}, {1}, {1.5}, {2}}
	y := []float64{1, 1, 1, 1, 5, 5, 5, 5}

	tree := NewTree(TreeConfig{MaxDepth: 2, MinLeaf: 1})
	require.NoError(t, tree.Fit(X, y))

	preds := tree.Predict([][]float64{{-3}, {3}})
	assert.InDelta(t, 1, preds[0], 1e-9)
	assert.InDelta(t, 5, preds[1], 1e-9)
}

func TestTreeConfigDefaults(t *testing.T) {
	tree := NewTree(TreeConfig{})
	assert.Equal(t, 6, tree.Config.MaxDepth)
	assert.Equal(t, 2, tree.Config.MinLeaf)
}

func TestTreeErrors(t *testing.T) {
	tree := NewTree(TreeConfig{})
	assert.Error(t, tree.Fit(nil, nil))
	assert.Error(t, tree.Fit([][]float64{{1}}, []float64{1, 2}))
	assert.Error(t, tree.Fit([][]float64{{1}, {1, 2}}, []float64{1, 2}))
}

func TestBaggingLearnsSignal(t *testing.T) {
	X, y := synth(300, 42)
	Xtest, ytest := synth(100, 7)

	model := NewBagging(BaggingConfig{NTrees: 30, MaxDepth: 6, Seed: 1})
	require.NoError(t, model.Fit(X, y))

	r2 := RSquared(model, Xtest, ytest)
	assert.Greater(t, r2, 0.8, "bagging should explain most variance, got R²=%v", r2)
}

func TestBaggingReproducibleWithSeed(t *testing.T) {
	X, y := synth(200, 3)

	a := NewBagging(BaggingConfig{NTrees: 10, Seed: 99})
	b := NewBagging(BaggingConfig{NTrees: 10, Seed: 99})
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.Predict(X[:10]), b.Predict(X[:10]))
}

func TestBoostingLearnsSignal(t *testing.T) {
	X, y := synth(300, 42)
	Xtest, ytest := synth(100, 7)

	model := NewBoosting(BoostingConfig{NStages: 100, LearningRate: 0.1, MaxDepth: 3, Seed: 1})
	require.NoError(t, model.Fit(X, y))

	r2 := RSquared(model, Xtest, ytest)
	assert.Greater(t, r2, 0.85, "boosting should explain most variance, got R²=%v", r2)
}

func TestBoostingMoreStagesFitTrainBetter(t *testing.T) {
	X, y := synth(200, 5)

	short := NewBoosting(BoostingConfig{NStages: 5, LearningRate: 0.1, Seed: 1})
	long := NewBoosting(BoostingConfig{NStages: 100, LearningRate: 0.1, Seed: 1})
	require.NoError(t, short.Fit(X, y))
	require.NoError(t, long.Fit(X, y))

	assert.Greater(t, RSquared(long, X, y), RSquared(short, X, y))
}

func TestImportances(t *testing.T) {
	X, y := synth(300, 11)

	for name, model := range map[string]Model{
		"bagging":  NewBagging(BaggingConfig{NTrees: 20, Seed: 2}),
		"boosting": NewBoosting(BoostingConfig{NStages: 50, Seed: 2}),
	} {
		require.NoError(t, model.Fit(X, y), name)
		imp := model.Importances()
		require.Len(t, imp, 3, name)

		var total float64
		for _, v := range imp {
			assert.GreaterOrEqual(t, v, 0.0, name)
			total += v
		}
		assert.InDelta(t, 1, total, 1e-9, name)

		// the first feature carries the signal in synth
		assert.Greater(t, imp[0], imp[1], name)
		assert.Greater(t, imp[0], imp[2], name)
	}
}

func TestConfigDefaults(t *testing.T) {
	bag := NewBagging(BaggingConfig{})
	assert.Equal(t, 50, bag.Config.NTrees)
	assert.Equal(t, 1.0, bag.Config.SampleRatio)
	assert.NotZero(t, bag.Config.Seed)

	boost := NewBoosting(BoostingConfig{})
	assert.Equal(t, 100, boost.Config.NStages)
	assert.Equal(t, 0.1, boost.Config.LearningRate)
	assert.Equal(t, 3, boost.Config.MaxDepth)
}

func TestRSquaredPerfectPrediction(t *testing.T) {
	X := [][]float64{{-1}, {1}}
	y := []float64{1, 5}
	tree := NewTree(TreeConfig{MaxDepth: 1, MinLeaf: 1})
	require.NoError(t, tree.Fit(X, y))
	assert.InDelta(t, 1.0, RSquared(tree, X, y), 1e-9)
}
