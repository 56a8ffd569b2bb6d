// Package pipeline runs the whole analysis end to end, strictly in
// sequence: load → describe → derive ratio → IQR filter → standardize →
// split → six-candidate search bank → rank → forecast. Any stage error is
// returned immediately; there are no retries and no partial results.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/rogerpaguaga/tarea-curso-ML/dataset"
	"github.com/rogerpaguaga/tarea-curso-ML/forecast"
	"github.com/rogerpaguaga/tarea-curso-ML/preprocess"
	"github.com/rogerpaguaga/tarea-curso-ML/regress"
	"github.com/rogerpaguaga/tarea-curso-ML/search"
)

// Config controls one pipeline run. Zero values fall back to the defaults
// below.
type Config struct {
	// CSVPath points at the input dataset. When empty, a simulated series
	// of Months rows is used instead.
	CSVPath string
	// Months is the simulated series length. Default 180 (2010-01..2024-12).
	Months int
	// Seed fixes the split, bootstrap sampling and stochastic searches.
	// Default 42.
	Seed int64
	// RandomBudget and BayesBudget are the fit counts for the sampled
	// strategies. Defaults 10 and 12.
	RandomBudget int
	BayesBudget  int
	// FutureProduction and FutureExport are the hand-provided volumes for
	// the projected months. Defaults to the five built-in rows.
	FutureProduction []float64
	FutureExport     []float64
}

// Default future volumes for the five projected months.
var (
	defaultFutureProduction = []float64{1180, 1190, 1185, 1200, 1210}
	defaultFutureExport     = []float64{565, 570, 568, 575, 580}
)

func (c Config) withDefaults() Config {
	if c.Months == 0 {
		c.Months = 180
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.RandomBudget == 0 {
		c.RandomBudget = 10
	}
	if c.BayesBudget == 0 {
		c.BayesBudget = 12
	}
	if c.FutureProduction == nil {
		c.FutureProduction = defaultFutureProduction
	}
	if c.FutureExport == nil {
		c.FutureExport = defaultFutureExport
	}
	return c
}

// Report collects everything a caller needs to print tables and render
// charts after a run.
type Report struct {
	Table       *dataset.Table
	Summary     dataset.Summary
	Frame       *preprocess.Frame // post-filter frame
	Dropped     int
	Scaler      *preprocess.Scaler
	Leaderboard search.Leaderboard
	Forecasts   []forecast.Row
}

// Best returns the leaderboard winner.
func (r *Report) Best() search.Candidate { return r.Leaderboard.Best() }

// Hyperparameter spaces for the two model families. Grid search enumerates
// the listed values; random and Bayesian search sample the spanned ranges.
var (
	baggingSpace = search.Space{
		{Name: "n_trees", Values: []float64{25, 50, 100}, Integer: true},
		{Name: "max_depth", Values: []float64{4, 6, 8}, Integer: true},
	}
	boostingSpace = search.Space{
		{Name: "n_stages", Values: []float64{50, 100, 200}, Integer: true},
		{Name: "learning_rate", Values: []float64{0.05, 0.1, 0.2}},
		{Name: "max_depth", Values: []float64{2, 3, 4}, Integer: true},
	}
)

func baggingFactory(p search.Point, seed int64) regress.Model {
	return regress.NewBagging(regress.BaggingConfig{
		NTrees:   p.Int("n_trees"),
		MaxDepth: p.Int("max_depth"),
		Seed:     seed,
	})
}

func boostingFactory(p search.Point, seed int64) regress.Model {
	return regress.NewBoosting(regress.BoostingConfig{
		NStages:      p.Int("n_stages"),
		LearningRate: p["learning_rate"],
		MaxDepth:     p.Int("max_depth"),
		Seed:         seed,
	})
}

// Run executes the full pipeline and returns its report.
func Run(cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()

	var table *dataset.Table
	var err error
	if cfg.CSVPath != "" {
		table, err = dataset.Load(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		log.Printf("Loaded %d observations from %s", table.Len(), cfg.CSVPath)
	} else {
		table = dataset.Simulate(cfg.Months, cfg.Seed)
		log.Printf("Simulated %d monthly observations (seed=%d)", table.Len(), cfg.Seed)
	}

	summary := table.Describe()

	frame, err := preprocess.DeriveRatio(table)
	if err != nil {
		return nil, fmt.Errorf("derive ratio: %w", err)
	}

	clean, dropped := preprocess.FenceFilter(frame)
	if clean.Len() == 0 {
		return nil, fmt.Errorf("no rows left after outlier filtering")
	}
	log.Printf("Outlier filter dropped %d of %d rows", dropped, frame.Len())

	scaler := preprocess.NewScaler()
	scaled, err := scaler.FitTransform(clean.Features())
	if err != nil {
		return nil, fmt.Errorf("standardize features: %w", err)
	}

	split, err := preprocess.TrainTestSplit(scaled, clean.Price, 0.2, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("train/test split: %w", err)
	}
	data := search.Data{
		XTrain: split.XTrain, YTrain: split.YTrain,
		XTest: split.XTest, YTest: split.YTest,
	}

	type bank struct {
		family   string
		strategy string
		run      func() (*search.Result, error)
	}
	candidates := []bank{
		{"bagging", "grid", func() (*search.Result, error) {
			return search.Grid(baggingFactory, baggingSpace, data, cfg.Seed)
		}},
		{"bagging", "random", func() (*search.Result, error) {
			return search.Random(baggingFactory, baggingSpace, data, cfg.RandomBudget, cfg.Seed)
		}},
		{"bagging", "bayes", func() (*search.Result, error) {
			return search.Bayes(baggingFactory, baggingSpace, data, cfg.BayesBudget, cfg.Seed)
		}},
		{"boosting", "grid", func() (*search.Result, error) {
			return search.Grid(boostingFactory, boostingSpace, data, cfg.Seed)
		}},
		{"boosting", "random", func() (*search.Result, error) {
			return search.Random(boostingFactory, boostingSpace, data, cfg.RandomBudget, cfg.Seed)
		}},
		{"boosting", "bayes", func() (*search.Result, error) {
			return search.Bayes(boostingFactory, boostingSpace, data, cfg.BayesBudget, cfg.Seed)
		}},
	}

	entries := make([]search.Candidate, 0, len(candidates))
	for _, c := range candidates {
		start := time.Now()
		res, err := c.run()
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", c.family, c.strategy, err)
		}
		log.Printf("%s/%s: test R²=%.3f (%d fits, %v)",
			c.family, c.strategy, search.Round3(res.Score), res.Evals, time.Since(start).Round(time.Millisecond))
		entries = append(entries, search.Candidate{
			Family:   c.family,
			Strategy: c.strategy,
			Point:    res.Point,
			Model:    res.Model,
			R2:       res.Score,
			Evals:    res.Evals,
		})
	}

	leaderboard := search.Rank(entries)
	best := leaderboard.Best()
	log.Printf("Selected %s (test R²=%.3f)", best.Name(), search.Round3(best.R2))

	lastDate := table.Rows[table.Len()-1].Date
	forecasts, err := forecast.Project(best.Model, scaler, lastDate.AddDate(0, 1, 0),
		cfg.FutureProduction, cfg.FutureExport)
	if err != nil {
		return nil, fmt.Errorf("project forecasts: %w", err)
	}

	return &Report{
		Table:       table,
		Summary:     summary,
		Frame:       clean,
		Dropped:     dropped,
		Scaler:      scaler,
		Leaderboard: leaderboard,
		Forecasts:   forecasts,
	}, nil
}
