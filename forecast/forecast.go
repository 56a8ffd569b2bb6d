// Package forecast applies the leaderboard winner to hand-specified future
// months, reusing the scaler fitted on the historical training data.
package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogerpaguaga/tarea-curso-ML/preprocess"
	"github.com/rogerpaguaga/tarea-curso-ML/regress"
)

// Row is one projected month: the provided volumes, the derived ratio and
// the model's predicted price.
type Row struct {
	Date       time.Time
	Production float64
	Export     float64
	Ratio      float64
	Price      float64 // predicted USD/lb
}

// Project predicts prices for len(production) consecutive months starting
// at start. The scaler must already be fitted on the historical data; it is
// never refit here. Production and export must be the same length, and a
// zero export aborts with an error.
func Project(model regress.Model, scaler *preprocess.Scaler, start time.Time, production, export []float64) ([]Row, error) {
	if len(production) != len(export) {
		return nil, fmt.Errorf("production (%d) and export (%d) lengths differ", len(production), len(export))
	}
	if len(production) == 0 {
		return nil, fmt.Errorf("no future rows to project")
	}
	if !scaler.Fitted() {
		return nil, fmt.Errorf("scaler not fitted on historical data")
	}

	raw := make([][]float64, len(production))
	rows := make([]Row, len(production))
	for i := range production {
		ratio, err := preprocess.Ratio(production[i], export[i])
		if err != nil {
			return nil, fmt.Errorf("future row %d: %w", i, err)
		}
		raw[i] = []float64{production[i], export[i], ratio}
		rows[i] = Row{
			Date:       start.AddDate(0, i, 0),
			Production: production[i],
			Export:     export[i],
			Ratio:      ratio,
		}
	}

	scaled, err := scaler.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("scale future rows: %w", err)
	}
	for i, p := range model.Predict(scaled) {
		rows[i].Price = p
	}
	return rows, nil
}

// Table renders the forecast rows as an aligned console table.
func Table(rows []Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %12s %10s %8s %10s\n", "month", "production", "export", "ratio", "price")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-8s %12.2f %10.2f %8.4f %10.4f\n",
			r.Date.Format("2006-01"), r.Production, r.Export, r.Ratio, r.Price)
	}
	return b.String()
}
