package profile

import (
	"errors"
	"math"
	"testing"

	"deblend-core/image"
)

func TestFitRecoversAmplitudes(t *testing.T) {
	const size = 48
	centers := []Center{{X: 14, Y: 14}, {X: 32, Y: 30}}
	cube := image.Cube{
		Gaussian(size, 14, 14, 1.8, 500),
		Gaussian(size, 14, 14, 1.8, 300),
	}
	for b, amp := range []float64{200, 450} {
		AddGaussian(cube[b], 32, 30, 1.8, amp)
	}

	res, err := Fit(cube, centers, nil, Config{InitSigma: 1.5})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(res.Sources))
	}
	want := [][]float64{{500, 200}, {300, 450}}
	for i, s := range res.Sources {
		for b := range want {
			if got := s.Amp[b]; math.Abs(got-want[b][i]) > 0.05*want[b][i] {
				t.Fatalf("source %d band %d amp %g, want ~%g", i, b, got, want[b][i])
			}
		}
		if math.Abs(s.Sigma-1.8) > 0.2 {
			t.Fatalf("source %d sigma %g, want ~1.8", i, s.Sigma)
		}
	}
	if !res.Converged {
		t.Fatalf("fit did not converge in %d iterations (loss %g)", res.Iterations, res.Loss)
	}
}

func TestFitCoincidentCentersDegenerate(t *testing.T) {
	cube := image.Cube{Gaussian(32, 16, 16, 1.5, 100)}
	centers := []Center{{X: 16, Y: 16}, {X: 16, Y: 16}}

	_, err := Fit(cube, centers, nil, Config{})
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("got %v, want ErrDegenerate", err)
	}
}

func TestFitNoCenters(t *testing.T) {
	cube := image.Cube{image.NewPlane(16, 16)}
	res, err := Fit(cube, nil, nil, Config{})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(res.Sources) != 0 || !res.Converged {
		t.Fatalf("empty fit: %+v", res)
	}
}

func TestRenderClipsNegativeAmplitude(t *testing.T) {
	r := &Result{
		Size:    16,
		Sources: []Source{{X: 8, Y: 8, Sigma: 1.5, Amp: []float64{-5, 10}}},
	}
	out := r.Render(0, 2)
	if out[0][8][8] != 0 {
		t.Fatalf("negative-amplitude band rendered %g, want 0", out[0][8][8])
	}
	if out[1][8][8] <= 0 {
		t.Fatalf("positive-amplitude band rendered %g, want > 0", out[1][8][8])
	}
}

func TestRenderOutOfRange(t *testing.T) {
	r := &Result{Size: 8}
	out := r.Render(3, 1)
	if out.Bands() != 1 || out.Height() != 8 {
		t.Fatalf("out-of-range render has shape %dx%d", out.Bands(), out.Height())
	}
}
