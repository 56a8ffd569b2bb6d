package dataset

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the descriptive statistics for one numeric column.
type ColumnStats struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Summary is the describe-style report over all numeric columns.
type Summary struct {
	Columns []ColumnStats
}

func describeColumn(name string, values []float64) ColumnStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return ColumnStats{
		Name:   name,
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Std:    stat.StdDev(values, nil),
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// Describe computes count/mean/std/min/quartiles/max for each numeric
// column of the table.
func (t *Table) Describe() Summary {
	n := t.Len()
	price := make([]float64, n)
	production := make([]float64, n)
	export := make([]float64, n)
	for i, row := range t.Rows {
		price[i] = row.Price
		production[i] = row.Production
		export[i] = row.Export
	}
	return Summary{Columns: []ColumnStats{
		describeColumn("price", price),
		describeColumn("production", production),
		describeColumn("export", export),
	}}
}

// String renders the summary as an aligned console table.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %6s %10s %10s %10s %10s %10s %10s %10s\n",
		"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "%-12s %6d %10.4f %10.4f %10.4f %10.4f %10.4f %10.4f %10.4f\n",
			c.Name, c.Count, c.Mean, c.Std, c.Min, c.Q1, c.Median, c.Q3, c.Max)
	}
	return b.String()
}
