package deblender

import (
	"errors"
	"math"
	"testing"
)

func TestSingleBandStacks(t *testing.T) {
	b := testScene(64, [][2]float64{{12, 12}, {40, 40}})
	s, err := NewSingleBand(SingleBandConfig{MaxSources: 4, Reduce: Mean()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ex, err := s.Deblend(0, b)
	if err != nil {
		t.Fatalf("deblend: %v", err)
	}
	if err := ex.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ex.Catalog.Len() != 2 {
		t.Fatalf("got %d rows, want 2", ex.Catalog.Len())
	}
	if ex.NBands != 1 {
		t.Fatalf("NBands = %d, want 1", ex.NBands)
	}
	// Stacks are zero-padded to the fixed capacity.
	if len(ex.Segmentation) != 4 || len(ex.Deblended) != 4 {
		t.Fatalf("stack lengths %d/%d, want 4/4", len(ex.Segmentation), len(ex.Deblended))
	}
	for j := 0; j < 2; j++ {
		if ex.Segmentation[j].Area() == 0 {
			t.Fatalf("detected source %d has an empty footprint", j)
		}
	}
	for j := 2; j < 4; j++ {
		if ex.Segmentation[j].Area() != 0 {
			t.Fatalf("padding slot %d has a non-empty footprint", j)
		}
	}
	for j := 0; j < ex.Catalog.Len(); j++ {
		x, y := ex.Catalog.X[j], ex.Catalog.Y[j]
		near := (math.Abs(x-12) <= 0.5 && math.Abs(y-12) <= 0.5) ||
			(math.Abs(x-40) <= 0.5 && math.Abs(y-40) <= 0.5)
		if !near {
			t.Fatalf("row %d centroid (%g,%g) matches no injected source", j, x, y)
		}
	}
}

func TestSingleBandDeblendedIsMasked(t *testing.T) {
	b := testScene(64, [][2]float64{{20, 20}})
	s, _ := NewSingleBand(SingleBandConfig{MaxSources: 2, Reduce: Mean()})

	ex, err := s.Deblend(0, b)
	if err != nil {
		t.Fatalf("deblend: %v", err)
	}
	cube := ex.Deblended[0]
	seg := ex.Segmentation[0]
	for y := range seg {
		for x := range seg[y] {
			if !seg[y][x] && cube[0][y][x] != 0 {
				t.Fatalf("flux %g outside the footprint at (%d,%d)", cube[0][y][x], x, y)
			}
		}
	}
	if seg[20][20] && cube[0][20][20] <= 0 {
		t.Fatal("no flux at the source centre")
	}
}

func TestSingleBandOverflow(t *testing.T) {
	b := testScene(64, [][2]float64{{12, 12}, {40, 40}, {12, 50}})
	s, _ := NewSingleBand(SingleBandConfig{MaxSources: 2, Reduce: Mean()})
	if _, err := s.Deblend(0, b); !errors.Is(err, ErrTooManySources) {
		t.Fatalf("got %v, want ErrTooManySources", err)
	}
}
