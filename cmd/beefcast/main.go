// Command beefcast runs the beef price pipeline: it loads (or simulates)
// the monthly series, prints descriptive statistics and the model
// leaderboard, projects five future months with the winning model, and
// renders the exploratory and forecast charts as PNGs.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/rogerpaguaga/tarea-curso-ML/forecast"
	"github.com/rogerpaguaga/tarea-curso-ML/pipeline"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	csvPath := flag.String("csv", "", "path to input CSV (Date,Price,Production,Export); empty runs on simulated data")
	outDir := flag.String("out", "plots", "output directory for generated charts")
	seed := flag.Int64("seed", 42, "random seed for the split and stochastic searches")
	months := flag.Int("months", 180, "number of simulated months when -csv is empty")
	flag.Parse()

	report, err := pipeline.Run(pipeline.Config{
		CSVPath: *csvPath,
		Months:  *months,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	fmt.Println("Descriptive statistics:")
	fmt.Println(report.Summary)
	fmt.Println("Leaderboard:")
	fmt.Println(report.Leaderboard)
	fmt.Printf("Forecast (%s):\n", report.Best().Name())
	fmt.Println(forecast.Table(report.Forecasts))

	if err := ensureDir(*outDir); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := plotPriceSeries(*outDir, report); err != nil {
		log.Fatalf("failed to plot price series: %v", err)
	}
	if err := plotHistograms(*outDir, report); err != nil {
		log.Fatalf("failed to plot distributions: %v", err)
	}
	if err := plotImportances(*outDir, report); err != nil {
		log.Fatalf("failed to plot feature importances: %v", err)
	}
	if err := plotForecast(*outDir, report); err != nil {
		log.Fatalf("failed to plot forecast: %v", err)
	}
	log.Printf("Charts written to %s", *outDir)
}

// plotPriceSeries draws the full historical price line.
func plotPriceSeries(outDir string, report *pipeline.Report) error {
	p := plot.New()
	p.Title.Text = "Beef price (USD/lb)"
	p.X.Label.Text = "month"
	p.Y.Label.Text = "price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	xys := make(plotter.XYs, 0, report.Table.Len())
	for _, row := range report.Table.Rows {
		xys = append(xys, plotter.XY{X: float64(row.Date.Unix()), Y: row.Price})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	p.Add(plotter.NewGrid(), line)
	p.Legend.Add("price", line)

	return p.Save(8*vg.Inch, 4*vg.Inch, filepath.Join(outDir, "price_series.png"))
}

// plotHistograms writes one distribution histogram per numeric column of
// the cleaned frame.
func plotHistograms(outDir string, report *pipeline.Report) error {
	cols := map[string][]float64{
		"price":      report.Frame.Price,
		"production": report.Frame.Production,
		"export":     report.Frame.Export,
		"ratio":      report.Frame.Ratio,
	}
	for name, values := range cols {
		p := plot.New()
		p.Title.Text = "Distribution: " + name
		p.X.Label.Text = name
		p.Y.Label.Text = "count"

		pts := make(plotter.Values, len(values))
		copy(pts, values)
		hist, err := plotter.NewHist(pts, 16)
		if err != nil {
			return err
		}
		hist.FillColor = color.RGBA{R: 120, G: 120, B: 200, A: 200}
		p.Add(hist)

		if err := p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(outDir, "hist_"+name+".png")); err != nil {
			return err
		}
	}
	return nil
}

// plotImportances draws the winning model's feature importances as bars.
func plotImportances(outDir string, report *pipeline.Report) error {
	best := report.Best()
	imp := best.Model.Importances()

	p := plot.New()
	p.Title.Text = "Feature importance: " + best.Name()
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(plotter.Values(imp), vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 200, G: 120, B: 30, A: 255}
	p.Add(bars)
	p.NominalX("production", "export", "ratio")

	return p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(outDir, "importance.png"))
}

// plotForecast draws the last two years of history with the five projected
// points appended in red.
func plotForecast(outDir string, report *pipeline.Report) error {
	p := plot.New()
	p.Title.Text = "Price forecast"
	p.X.Label.Text = "month"
	p.Y.Label.Text = "price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	tail := report.Table.Rows
	if len(tail) > 24 {
		tail = tail[len(tail)-24:]
	}
	hist := make(plotter.XYs, 0, len(tail))
	for _, row := range tail {
		hist = append(hist, plotter.XY{X: float64(row.Date.Unix()), Y: row.Price})
	}
	histLine, err := plotter.NewLine(hist)
	if err != nil {
		return err
	}
	histLine.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	fc := make(plotter.XYs, 0, len(report.Forecasts))
	for _, row := range report.Forecasts {
		fc = append(fc, plotter.XY{X: float64(row.Date.Unix()), Y: row.Price})
	}
	fcLine, err := plotter.NewLine(fc)
	if err != nil {
		return err
	}
	fcLine.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	fcLine.Width = vg.Points(1.5)
	fcPoints, err := plotter.NewScatter(fc)
	if err != nil {
		return err
	}
	fcPoints.GlyphStyle.Color = fcLine.Color
	fcPoints.GlyphStyle.Radius = vg.Points(2.5)

	p.Add(plotter.NewGrid(), histLine, fcLine, fcPoints)
	p.Legend.Add("history", histLine)
	p.Legend.Add("forecast", fcLine)

	ymin, ymax := yRange(hist, fc)
	p.Y.Min = ymin
	p.Y.Max = ymax

	return p.Save(8*vg.Inch, 4*vg.Inch, filepath.Join(outDir, "forecast.png"))
}

// yRange computes a padded vertical range over both series.
func yRange(series ...plotter.XYs) (ymin, ymax float64) {
	ymin = math.Inf(1)
	ymax = math.Inf(-1)
	for _, xys := range series {
		for _, pt := range xys {
			if pt.Y < ymin {
				ymin = pt.Y
			}
			if pt.Y > ymax {
				ymax = pt.Y
			}
		}
	}
	pad := (ymax - ymin) * 0.08
	if pad == 0 {
		pad = 1.0
	}
	return ymin - pad, ymax + pad
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
