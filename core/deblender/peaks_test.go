package deblender

import (
	"math"
	"testing"

	"deblend-core/profile"
)

func TestPeaksCatalog(t *testing.T) {
	b := testScene(64, [][2]float64{{12, 12}, {40, 40}})
	s, err := NewPeaks(PeaksConfig{MaxSources: 5, SkyLevel: 400, Reduce: Mean()})
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
	if ex.Segmentation != nil || ex.Deblended != nil {
		t.Fatal("peaks must not produce segmentation or deblended images")
	}
	for j := 0; j < ex.Catalog.Len(); j++ {
		x, y := ex.Catalog.X[j], ex.Catalog.Y[j]
		near := (math.Abs(x-12) <= 1 && math.Abs(y-12) <= 1) ||
			(math.Abs(x-40) <= 1 && math.Abs(y-40) <= 1)
		if !near {
			t.Fatalf("row %d at (%g,%g) matches no injected source", j, x, y)
		}
		// Sky coordinates are arcseconds; one pixel is 0.2".
		ra, dec := b.WCS.PixelToWorld(x, y)
		if math.Abs(ex.Catalog.RA[j]-ra*3600) > 1e-9 || math.Abs(ex.Catalog.Dec[j]-dec*3600) > 1e-9 {
			t.Fatalf("row %d sky coords disagree with the pixel position", j)
		}
	}
}

func TestPeaksCapsAtBrightest(t *testing.T) {
	b := testScene(64, [][2]float64{{12, 12}, {40, 40}})
	// Make the second source clearly brighter than the shared default.
	profile.AddGaussian(b.Images[0][0], 40, 40, 1.5, 600)
	profile.AddGaussian(b.Images[0][1], 40, 40, 1.5, 600)

	s, err := NewPeaks(PeaksConfig{MaxSources: 1, SkyLevel: 400, Reduce: Mean()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ex, err := s.Deblend(0, b)
	if err != nil {
		t.Fatalf("deblend: %v", err)
	}
	if ex.Catalog.Len() != 1 {
		t.Fatalf("got %d rows, want the capped 1", ex.Catalog.Len())
	}
	if math.Abs(ex.Catalog.X[0]-40) > 1 || math.Abs(ex.Catalog.Y[0]-40) > 1 {
		t.Fatalf("cap kept (%g,%g), want the brighter source near (40,40)",
			ex.Catalog.X[0], ex.Catalog.Y[0])
	}
}

func TestNewPeaksValidation(t *testing.T) {
	if _, err := NewPeaks(PeaksConfig{MaxSources: 0, SkyLevel: 400, Reduce: Mean()}); err == nil {
		t.Fatal("zero max sources accepted")
	}
	if _, err := NewPeaks(PeaksConfig{MaxSources: 5, SkyLevel: 400}); err == nil {
		t.Fatal("missing reduction accepted")
	}
	if _, err := NewPeaks(PeaksConfig{MaxSources: 5, Reduce: Mean()}); err == nil {
		t.Fatal("missing sky level accepted")
	}
}
