package profile

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"deblend-core/image"
)

// ErrDegenerate reports a numerically singular fit, typically two
// candidate centres landing on the same pixel. Callers are expected to
// branch on it rather than treat it as fatal.
var ErrDegenerate = errors.New("profile: degenerate system")

// Source is one fitted source: a shared width and one amplitude per band.
type Source struct {
	X, Y  float64
	Sigma float64
	Amp   []float64
}

// Result is the outcome of a successful fit.
type Result struct {
	Sources    []Source
	Size       int
	Iterations int
	Converged  bool
	Loss       float64
}

// Config controls the iterative fit.
type Config struct {
	InitSigma float64 // starting profile width in pixels (default 1.5)
	ERel      float64 // relative loss tolerance for convergence (default 1e-5)
	MaxIter   int     // iteration cap (default 200)
}

func (c *Config) fill() {
	if c.InitSigma <= 0 {
		c.InitSigma = 1.5
	}
	if c.ERel <= 0 {
		c.ERel = 1e-5
	}
	if c.MaxIter <= 0 {
		c.MaxIter = 200
	}
}

// Fit models cube as a sum of circular Gaussians at the given centres.
// Per-band amplitudes are solved linearly at each step; the shared
// width is refined iteratively until the weighted squared loss changes
// by less than ERel or MaxIter is reached. weights holds one inverse
// noise variance per band; nil means uniform.
//
// Centres that produce a singular linear system return ErrDegenerate.
func Fit(cube image.Cube, centers []Center, weights []float64, cfg Config) (*Result, error) {
	cfg.fill()
	size := cube.Height()
	if size == 0 || cube.Width() != size {
		return nil, fmt.Errorf("profile: fit needs a square cube, got %dx%d", cube.Height(), cube.Width())
	}
	if len(centers) == 0 {
		return &Result{Size: size, Converged: true}, nil
	}
	if weights == nil {
		weights = make([]float64, cube.Bands())
		for i := range weights {
			weights[i] = 1
		}
	}

	sigma := cfg.InitSigma
	amps, loss, err := solveAt(cube, centers, weights, sigma)
	if err != nil {
		return nil, err
	}

	// Coordinate descent on the shared width: probe both directions,
	// shrink the step when neither improves.
	step := 0.5
	const minSigma = 0.3
	iter := 1
	converged := false
	for ; iter < cfg.MaxIter; iter++ {
		improved := false
		prev := loss
		for _, s := range []float64{sigma * (1 + step), math.Max(minSigma, sigma*(1-step))} {
			a, l, serr := solveAt(cube, centers, weights, s)
			if serr != nil {
				return nil, serr
			}
			if l < loss {
				sigma, amps, loss = s, a, l
				improved = true
			}
		}
		if improved {
			if prev > 0 && (prev-loss)/prev < cfg.ERel {
				converged = true
				break
			}
			continue
		}
		// No improvement in either direction: refine the step until it
		// is too small to matter.
		step /= 2
		if step < 1e-3 {
			converged = true
			break
		}
	}

	res := &Result{Size: size, Iterations: iter, Converged: converged, Loss: loss}
	for i, c := range centers {
		ab := make([]float64, cube.Bands())
		for b := range ab {
			ab[b] = amps[b][i]
		}
		res.Sources = append(res.Sources, Source{X: c.X, Y: c.Y, Sigma: sigma, Amp: ab})
	}
	return res, nil
}

// solveAt fixes sigma and solves the per-band amplitudes by normal
// equations. A failed Cholesky factorization is the degeneracy signal.
func solveAt(cube image.Cube, centers []Center, weights []float64, sigma float64) (amps [][]float64, loss float64, err error) {
	size := cube.Height()
	planes := basis(size, centers, sigma)
	n := len(planes)

	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var s float64
			pi, pj := planes[i], planes[j]
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					s += pi[y][x] * pj[y][x]
				}
			}
			gram.SetSym(i, j, s)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return nil, 0, ErrDegenerate
	}

	amps = make([][]float64, cube.Bands())
	for b := 0; b < cube.Bands(); b++ {
		rhs := mat.NewVecDense(n, nil)
		img := cube.Band(b)
		for i, p := range planes {
			var s float64
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					s += p[y][x] * img[y][x]
				}
			}
			rhs.SetVec(i, s)
		}
		var x mat.VecDense
		if serr := chol.SolveVecTo(&x, rhs); serr != nil {
			return nil, 0, ErrDegenerate
		}
		a := make([]float64, n)
		for i := range a {
			a[i] = x.AtVec(i)
		}
		amps[b] = a

		var resid float64
		for y := 0; y < size; y++ {
			for xx := 0; xx < size; xx++ {
				m := 0.0
				for i, p := range planes {
					m += a[i] * p[y][xx]
				}
				d := img[y][xx] - m
				resid += d * d
			}
		}
		loss += weights[b] * resid
	}
	return amps, loss, nil
}

// Render draws the i-th fitted source into its own cube, clipped at
// zero so downstream consumers see non-negative flux.
func (r *Result) Render(i, bands int) image.Cube {
	out := image.NewCube(bands, r.Size, r.Size)
	if i < 0 || i >= len(r.Sources) {
		return out
	}
	s := r.Sources[i]
	for b := 0; b < bands; b++ {
		amp := 0.0
		if b < len(s.Amp) {
			amp = s.Amp[b]
		}
		if amp <= 0 {
			continue
		}
		AddGaussian(out[b], s.X, s.Y, s.Sigma, amp)
	}
	return out
}
