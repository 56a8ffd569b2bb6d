package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beef.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "Date,Price,Production,Export\n"+
		"2020-01,2.50,1000,450\n"+
		"2020-02,2.55,1010,455\n"+
		"2020-03,2.48,990,440\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.Rows[0]
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 2.50, first.Price)
	assert.Equal(t, 1000.0, first.Production)
	assert.Equal(t, 450.0, first.Export)
}

func TestLoadHeaderOrderAndCase(t *testing.T) {
	path := writeCSV(t, "EXPORT,date,Production,PRICE\n"+
		"450,2020-01,1000,2.50\n")

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.50, table.Rows[0].Price)
	assert.Equal(t, 450.0, table.Rows[0].Export)
}

func TestLoadSortsByDate(t *testing.T) {
	path := writeCSV(t, "Date,Price,Production,Export\n"+
		"2020-03,2.48,990,440\n"+
		"2020-01,2.50,1000,450\n"+
		"2020-02,2.55,1010,455\n")

	table, err := Load(path)
	require.NoError(t, err)
	for i := 1; i < table.Len(); i++ {
		assert.True(t, table.Rows[i-1].Date.Before(table.Rows[i].Date))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing column", "Date,Price,Production\n2020-01,2.5,1000\n"},
		{"bad date", "Date,Price,Production,Export\nnot-a-date,2.5,1000,450\n"},
		{"bad number", "Date,Price,Production,Export\n2020-01,cheap,1000,450\n"},
		{"no rows", "Date,Price,Production,Export\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCSV(t, tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestSimulate(t *testing.T) {
	table := Simulate(180, 42)
	require.Equal(t, 180, table.Len())

	assert.Equal(t, time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), table.Rows[0].Date)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), table.Rows[179].Date)

	for _, row := range table.Rows {
		assert.Greater(t, row.Export, 0.0)
		assert.Greater(t, row.Production, 0.0)
		assert.Greater(t, row.Price, 0.0)
	}

	// same seed, same series
	again := Simulate(180, 42)
	assert.Equal(t, table.Rows, again.Rows)

	// different seed, different series
	other := Simulate(180, 7)
	assert.NotEqual(t, table.Rows, other.Rows)
}

func TestDescribe(t *testing.T) {
	table := Simulate(120, 1)
	summary := table.Describe()

	require.Len(t, summary.Columns, 3)
	for _, col := range summary.Columns {
		assert.Equal(t, 120, col.Count)
		assert.LessOrEqual(t, col.Min, col.Q1)
		assert.LessOrEqual(t, col.Q1, col.Median)
		assert.LessOrEqual(t, col.Median, col.Q3)
		assert.LessOrEqual(t, col.Q3, col.Max)
		assert.Greater(t, col.Std, 0.0)
	}
	assert.Contains(t, summary.String(), "production")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := Simulate(24, 3)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, table.WriteCSV(path))

	back, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, table.Len(), back.Len())
	for i := range table.Rows {
		assert.Equal(t, table.Rows[i].Date, back.Rows[i].Date)
		assert.InDelta(t, table.Rows[i].Price, back.Rows[i].Price, 1e-4)
	}
}
