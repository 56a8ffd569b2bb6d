package preprocess

import (
	"fmt"
	"math/rand"
)

// Split holds the shuffled 80/20 train/test partition of a feature matrix
// and its target.
type Split struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64
}

// TrainTestSplit shuffles the rows with the given seed and carves off
// testFraction of them for the held-out test set.
func TrainTestSplit(X [][]float64, y []float64, testFraction float64, seed int64) (*Split, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", len(X), len(y))
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, fmt.Errorf("test fraction %v out of (0,1)", testFraction)
	}
	n := len(X)
	nTest := int(float64(n) * testFraction)
	if nTest == 0 || nTest == n {
		return nil, fmt.Errorf("split of %d rows at %v leaves an empty side", n, testFraction)
	}

	idx := rand.New(rand.NewSource(seed)).Perm(n)
	sp := &Split{
		XTrain: make([][]float64, 0, n-nTest),
		YTrain: make([]float64, 0, n-nTest),
		XTest:  make([][]float64, 0, nTest),
		YTest:  make([]float64, 0, nTest),
	}
	for i, j := range idx {
		if i < nTest {
			sp.XTest = append(sp.XTest, X[j])
			sp.YTest = append(sp.YTest, y[j])
		} else {
			sp.XTrain = append(sp.XTrain, X[j])
			sp.YTrain = append(sp.YTrain, y[j])
		}
	}
	return sp, nil
}
