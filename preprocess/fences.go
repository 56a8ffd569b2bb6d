package preprocess

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Fence is the inclusive [Lo, Hi] range a column value must fall in to
// survive outlier filtering.
type Fence struct {
	Lo, Hi float64
}

// Contains reports whether v lies inside the fence.
func (fc Fence) Contains(v float64) bool { return v >= fc.Lo && v <= fc.Hi }

// fenceFor computes the Tukey fence Q1-1.5*IQR .. Q3+1.5*IQR for a column.
func fenceFor(values []float64) Fence {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1
	return Fence{Lo: q1 - 1.5*iqr, Hi: q3 + 1.5*iqr}
}

// Fences computes the outlier fence per numeric column of the frame.
func Fences(f *Frame) map[string]Fence {
	fences := make(map[string]Fence)
	for name, col := range f.numericColumns() {
		fences[name] = fenceFor(col)
	}
	return fences
}

// FenceFilter drops every row where any numeric column falls outside its
// fence. Fences are computed once on the incoming frame, so re-filtering an
// already clean frame removes nothing further. Returns the filtered frame
// and the number of rows dropped.
func FenceFilter(f *Frame) (*Frame, int) {
	fences := Fences(f)
	keep := make([]bool, f.Len())
	for i := range keep {
		keep[i] = true
	}
	for name, col := range f.numericColumns() {
		fence := fences[name]
		for i, v := range col {
			if !fence.Contains(v) {
				keep[i] = false
			}
		}
	}
	out := f.selectRows(keep)
	return out, f.Len() - out.Len()
}
