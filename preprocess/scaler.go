package preprocess

import (
	"fmt"

	"github.com/ezoic/scigo/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Scaler standardizes feature rows to zero mean and unit variance. The
// parameters are fit exactly once, on the post-filter training-eligible
// data; every later transform, including future forecast rows, reuses them.
type Scaler struct {
	std    *preprocessing.StandardScaler
	fitted bool
}

// NewScaler returns an unfitted standard scaler.
func NewScaler() *Scaler {
	return &Scaler{std: preprocessing.NewStandardScaler(true, true)}
}

// Fitted reports whether the scaler parameters have been fit.
func (s *Scaler) Fitted() bool { return s.fitted }

func toDense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to scale")
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return mat.NewDense(len(rows), cols, flat), nil
}

// Fit learns the per-column mean and scale. Fitting twice is an error: the
// pipeline's contract is fit-once/transform-many.
func (s *Scaler) Fit(rows [][]float64) error {
	if s.fitted {
		return fmt.Errorf("scaler already fitted")
	}
	X, err := toDense(rows)
	if err != nil {
		return err
	}
	if err := s.std.Fit(X); err != nil {
		return fmt.Errorf("fit scaler: %w", err)
	}
	s.fitted = true
	return nil
}

// Transform applies the fitted standardization to the given rows.
func (s *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaler not fitted")
	}
	X, err := toDense(rows)
	if err != nil {
		return nil, err
	}
	scaled, err := s.std.Transform(X)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	dense := mat.DenseCopyOf(scaled)
	r, c := dense.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = dense.At(i, j)
		}
	}
	return out, nil
}

// FitTransform fits on rows then returns their scaled values.
func (s *Scaler) FitTransform(rows [][]float64) ([][]float64, error) {
	if err := s.Fit(rows); err != nil {
		return nil, err
	}
	return s.Transform(rows)
}
