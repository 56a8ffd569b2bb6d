package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerpaguaga/tarea-curso-ML/dataset"
)

func TestRatio(t *testing.T) {
	r, err := Ratio(1000, 400)
	require.NoError(t, err)
	assert.Equal(t, 2.5, r)

	_, err = Ratio(1000, 0)
	assert.Error(t, err, "zero export must be rejected, not propagated as Inf")
}

func TestDeriveRatio(t *testing.T) {
	table := dataset.Simulate(60, 11)
	frame, err := DeriveRatio(table)
	require.NoError(t, err)
	require.Equal(t, 60, frame.Len())
	for i := range frame.Ratio {
		assert.InDelta(t, frame.Production[i]/frame.Export[i], frame.Ratio[i], 1e-12)
	}
}

func TestDeriveRatioZeroExport(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Observation{
		{Price: 2.5, Production: 1000, Export: 400},
		{Price: 2.6, Production: 1010, Export: 0},
	}}
	_, err := DeriveRatio(table)
	assert.Error(t, err)
}

func TestFenceFilterDropsOutliers(t *testing.T) {
	table := dataset.Simulate(120, 5)
	// plant one wildly out-of-range row
	table.Rows[60].Price = 50

	frame, err := DeriveRatio(table)
	require.NoError(t, err)

	fences := Fences(frame)
	clean, dropped := FenceFilter(frame)

	assert.Greater(t, dropped, 0)
	assert.Equal(t, frame.Len()-dropped, clean.Len())

	// every surviving value lies within the pre-filter fences
	for name, col := range clean.numericColumns() {
		fence := fences[name]
		for i, v := range col {
			assert.True(t, fence.Contains(v), "%s row %d value %v outside [%v, %v]",
				name, i, v, fence.Lo, fence.Hi)
		}
	}
}

func TestFenceFilterRowWiseAnyColumn(t *testing.T) {
	// a single outlier column drops the row even if the others are normal
	table := dataset.Simulate(120, 9)
	target := table.Rows[30].Date
	table.Rows[30].Export = table.Rows[30].Export * 20

	frame, err := DeriveRatio(table)
	require.NoError(t, err)
	clean, _ := FenceFilter(frame)

	for _, d := range clean.Dates {
		assert.NotEqual(t, target, d)
	}
}

func TestFenceFilterIdempotent(t *testing.T) {
	// evenly spaced data keeps every inlier far inside the fences, so the
	// only drops are the two planted extremes
	table := &dataset.Table{}
	for i := 0; i < 100; i++ {
		table.Rows = append(table.Rows, dataset.Observation{
			Price:      2 + 0.01*float64(i),
			Production: 1000 + 2*float64(i),
			Export:     400 + float64(i),
		})
	}
	table.Rows[10].Price = 40
	table.Rows[90].Production = 1e6

	frame, err := DeriveRatio(table)
	require.NoError(t, err)

	clean, dropped := FenceFilter(frame)
	require.Greater(t, dropped, 0)

	again, droppedAgain := FenceFilter(clean)
	assert.Equal(t, 0, droppedAgain, "re-filtering already clean data must be a no-op")
	assert.Equal(t, clean.Len(), again.Len())
}

func TestTrainTestSplit(t *testing.T) {
	table := dataset.Simulate(100, 3)
	frame, err := DeriveRatio(table)
	require.NoError(t, err)

	X := frame.Features()
	sp, err := TrainTestSplit(X, frame.Price, 0.2, 42)
	require.NoError(t, err)

	assert.Len(t, sp.XTest, 20)
	assert.Len(t, sp.XTrain, 80)
	assert.Len(t, sp.YTest, 20)
	assert.Len(t, sp.YTrain, 80)

	// reproducible with the same seed
	sp2, err := TrainTestSplit(X, frame.Price, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, sp.YTest, sp2.YTest)

	// different seed shuffles differently
	sp3, err := TrainTestSplit(X, frame.Price, 0.2, 7)
	require.NoError(t, err)
	assert.NotEqual(t, sp.YTest, sp3.YTest)
}

func TestTrainTestSplitErrors(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []float64{1, 2, 3}

	_, err := TrainTestSplit(X, y[:2], 0.2, 1)
	assert.Error(t, err)

	_, err = TrainTestSplit(X, y, 0, 1)
	assert.Error(t, err)

	_, err = TrainTestSplit(X, y, 0.01, 1) // empty test side
	assert.Error(t, err)
}
