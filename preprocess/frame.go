// Package preprocess turns the raw market table into model-ready features:
// it derives the production/export ratio, drops statistical outliers with
// the 1.5 IQR fence rule, and standardizes the feature columns with a
// fit-once scaler that is reused verbatim for future forecast rows.
package preprocess

import (
	"fmt"
	"time"

	"github.com/rogerpaguaga/tarea-curso-ML/dataset"
)

// Frame is the column-oriented working set after feature derivation. All
// slices share the same length and row order.
type Frame struct {
	Dates      []time.Time
	Price      []float64
	Production []float64
	Export     []float64
	Ratio      []float64
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int { return len(f.Price) }

// Ratio derives the supply ratio for one row. A zero export volume has no
// meaningful ratio and is rejected rather than propagated as +Inf.
func Ratio(production, export float64) (float64, error) {
	if export == 0 {
		return 0, fmt.Errorf("export is zero, ratio undefined")
	}
	return production / export, nil
}

// DeriveRatio builds a Frame from the table, computing ratio per row. Any
// zero-export row aborts the derivation.
func DeriveRatio(t *dataset.Table) (*Frame, error) {
	n := t.Len()
	f := &Frame{
		Dates:      make([]time.Time, n),
		Price:      make([]float64, n),
		Production: make([]float64, n),
		Export:     make([]float64, n),
		Ratio:      make([]float64, n),
	}
	for i, row := range t.Rows {
		ratio, err := Ratio(row.Production, row.Export)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, row.Date.Format("2006-01"), err)
		}
		f.Dates[i] = row.Date
		f.Price[i] = row.Price
		f.Production[i] = row.Production
		f.Export[i] = row.Export
		f.Ratio[i] = ratio
	}
	return f, nil
}

// FeatureNames are the model input columns, in matrix column order.
var FeatureNames = []string{"production", "export", "ratio"}

// Features returns the raw feature rows (production, export, ratio) aligned
// with Price as the target.
func (f *Frame) Features() [][]float64 {
	X := make([][]float64, f.Len())
	for i := range X {
		X[i] = []float64{f.Production[i], f.Export[i], f.Ratio[i]}
	}
	return X
}

// numericColumns exposes every numeric column for the outlier fence rule.
func (f *Frame) numericColumns() map[string][]float64 {
	return map[string][]float64{
		"price":      f.Price,
		"production": f.Production,
		"export":     f.Export,
		"ratio":      f.Ratio,
	}
}

// selectRows builds a new frame keeping only the rows flagged true.
func (f *Frame) selectRows(keep []bool) *Frame {
	out := &Frame{}
	for i := 0; i < f.Len(); i++ {
		if !keep[i] {
			continue
		}
		out.Dates = append(out.Dates, f.Dates[i])
		out.Price = append(out.Price, f.Price[i])
		out.Production = append(out.Production, f.Production[i])
		out.Export = append(out.Export, f.Export[i])
		out.Ratio = append(out.Ratio, f.Ratio[i])
	}
	return out
}
