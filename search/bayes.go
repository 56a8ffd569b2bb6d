package search

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	// bayesInitPoints is the size of the random warm-up design before the
	// surrogate takes over.
	bayesInitPoints = 5
	// bayesCandidates is how many random candidates the acquisition
	// function scores per iteration.
	bayesCandidates = 128

	gpLengthScale = 0.3
	gpNoise       = 1e-6
	eiXi          = 0.01
)

// Bayes runs sequential model-based optimization: a random warm-up design,
// then a Gaussian-process surrogate over the unit-cube-normalized
// hyperparameters with an expected-improvement acquisition picking each
// next configuration. Total fits equal the budget.
func Bayes(f Factory, sp Space, d Data, budget int, seed int64) (*Result, error) {
	if err := sp.validate(); err != nil {
		return nil, fmt.Errorf("bayes search: %w", err)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("bayes search: budget %d must be positive", budget)
	}

	rng := rand.New(rand.NewSource(seed))
	dim := len(sp)

	var units [][]float64 // evaluated locations in the unit cube
	var scores []float64
	best := &Result{Score: negInf}

	evalUnit := func(u []float64) error {
		point := sp.decode(u)
		model, score, err := evaluate(f, point, d, seed)
		if err != nil {
			return err
		}
		units = append(units, u)
		scores = append(scores, score)
		best.Evals++
		if score > best.Score {
			best.Model, best.Point, best.Score = model, point, score
		}
		return nil
	}

	nInit := bayesInitPoints
	if nInit > budget {
		nInit = budget
	}
	for i := 0; i < nInit; i++ {
		if err := evalUnit(randomUnit(rng, dim)); err != nil {
			return nil, fmt.Errorf("bayes search: %w", err)
		}
	}

	for best.Evals < budget {
		surrogate, err := fitGP(units, scores, gpLengthScale, gpNoise)
		if err != nil {
			// Degenerate kernel matrix (e.g. duplicate points): fall back
			// to a random draw for this iteration.
			if err := evalUnit(randomUnit(rng, dim)); err != nil {
				return nil, fmt.Errorf("bayes search: %w", err)
			}
			continue
		}

		var next []float64
		bestEI := negInf
		for c := 0; c < bayesCandidates; c++ {
			u := randomUnit(rng, dim)
			mu, sigma := surrogate.predict(u)
			ei := expectedImprovement(mu, sigma, best.Score)
			if ei > bestEI {
				bestEI = ei
				next = u
			}
		}
		if err := evalUnit(next); err != nil {
			return nil, fmt.Errorf("bayes search: %w", err)
		}
	}
	return best, nil
}

func randomUnit(rng *rand.Rand, dim int) []float64 {
	u := make([]float64, dim)
	for i := range u {
		u[i] = rng.Float64()
	}
	return u
}

// decode maps a unit-cube location to a concrete hyperparameter point.
func (s Space) decode(u []float64) Point {
	point := make(Point, len(s))
	for i, param := range s {
		lo, hi := s.bounds(i)
		v := lo + u[i]*(hi-lo)
		if param.Integer {
			v = math.Round(v)
		}
		point[param.Name] = v
	}
	return point
}

// gp is a Gaussian-process regressor with an RBF kernel over unit-cube
// locations, used as the surrogate for Bayesian search.
type gp struct {
	x     [][]float64
	mean  float64
	chol  mat.Cholesky
	alpha *mat.VecDense
	ls    float64
	noise float64
}

func rbf(a, b []float64, ls float64) float64 {
	var d2 float64
	for i := range a {
		d := a[i] - b[i]
		d2 += d * d
	}
	return math.Exp(-d2 / (2 * ls * ls))
}

func fitGP(x [][]float64, y []float64, ls, noise float64) (*gp, error) {
	n := len(x)
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rbf(x[i], x[j], ls)
			if i == j {
				v += noise
			}
			k.SetSym(i, j, v)
		}
	}

	g := &gp{x: x, ls: ls, noise: noise}
	if ok := g.chol.Factorize(k); !ok {
		return nil, fmt.Errorf("kernel matrix not positive definite")
	}

	var sum float64
	for _, v := range y {
		sum += v
	}
	g.mean = sum / float64(n)

	centered := mat.NewVecDense(n, nil)
	for i, v := range y {
		centered.SetVec(i, v-g.mean)
	}
	g.alpha = mat.NewVecDense(n, nil)
	if err := g.chol.SolveVecTo(g.alpha, centered); err != nil {
		return nil, fmt.Errorf("solve kernel system: %w", err)
	}
	return g, nil
}

// predict returns the posterior mean and standard deviation at u.
func (g *gp) predict(u []float64) (mu, sigma float64) {
	n := len(g.x)
	kstar := mat.NewVecDense(n, nil)
	for i := range g.x {
		kstar.SetVec(i, rbf(u, g.x[i], g.ls))
	}

	mu = g.mean + mat.Dot(kstar, g.alpha)

	v := mat.NewVecDense(n, nil)
	if err := g.chol.SolveVecTo(v, kstar); err != nil {
		return mu, 0
	}
	variance := 1 + g.noise - mat.Dot(kstar, v)
	if variance < 1e-12 {
		variance = 1e-12
	}
	return mu, math.Sqrt(variance)
}

// expectedImprovement scores how much u is expected to beat the incumbent.
func expectedImprovement(mu, sigma, incumbent float64) float64 {
	if sigma == 0 {
		return 0
	}
	z := (mu - incumbent - eiXi) / sigma
	cdf := 0.5 * math.Erfc(-z/math.Sqrt2)
	pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	return (mu-incumbent-eiXi)*cdf + sigma*pdf
}
