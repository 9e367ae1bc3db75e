package detect

import (
	"testing"

	"deblend-core/image"
	"deblend-core/profile"
)

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func TestPeakLocalMaxFindsSeparatedSources(t *testing.T) {
	p := image.NewPlane(64, 64)
	want := [][2]int{{12, 12}, {40, 20}, {25, 50}}
	profile.AddGaussian(p, 12, 12, 1.5, 900)
	profile.AddGaussian(p, 40, 20, 1.5, 700)
	profile.AddGaussian(p, 25, 50, 1.5, 500)

	peaks := PeakLocalMax(p, 2, 100, 10)
	if len(peaks) != 3 {
		t.Fatalf("got %d peaks, want 3", len(peaks))
	}
	for _, w := range want {
		found := false
		for _, pk := range peaks {
			if absInt(pk.X-w[0]) <= 1 && absInt(pk.Y-w[1]) <= 1 {
				found = true
			}
		}
		if !found {
			t.Fatalf("no peak within one pixel of (%d,%d): %+v", w[0], w[1], peaks)
		}
	}
}

func TestPeakLocalMaxBrightestFirst(t *testing.T) {
	p := image.NewPlane(32, 32)
	profile.AddGaussian(p, 8, 8, 1.2, 300)
	profile.AddGaussian(p, 24, 24, 1.2, 600)

	peaks := PeakLocalMax(p, 2, 50, 0)
	if len(peaks) != 2 {
		t.Fatalf("got %d peaks, want 2", len(peaks))
	}
	if peaks[0].Value < peaks[1].Value {
		t.Fatalf("peaks not brightest-first: %+v", peaks)
	}
	if peaks[0].X != 24 || peaks[0].Y != 24 {
		t.Fatalf("brightest peak at (%d,%d), want (24,24)", peaks[0].X, peaks[0].Y)
	}
}

func TestPeakLocalMaxCap(t *testing.T) {
	p := image.NewPlane(64, 64)
	for _, c := range [][2]float64{{10, 10}, {30, 10}, {50, 10}, {10, 40}, {30, 40}} {
		profile.AddGaussian(p, c[0], c[1], 1.3, 400)
	}
	peaks := PeakLocalMax(p, 2, 50, 3)
	if len(peaks) != 3 {
		t.Fatalf("cap ignored: got %d peaks", len(peaks))
	}
}

func TestPeakLocalMaxMinDistanceSuppression(t *testing.T) {
	p := image.NewPlane(32, 32)
	// Two maxima four pixels apart; minDistance 5 keeps only the brighter.
	p[10][10] = 100
	p[10][14] = 90

	peaks := PeakLocalMax(p, 5, 10, 0)
	if len(peaks) != 1 {
		t.Fatalf("got %d peaks, want 1", len(peaks))
	}
	if peaks[0].X != 10 || peaks[0].Value != 100 {
		t.Fatalf("kept the wrong peak: %+v", peaks[0])
	}
}

func TestPeakLocalMaxThreshold(t *testing.T) {
	p := image.NewPlane(16, 16)
	p[4][4] = 100
	p[12][12] = 5

	peaks := PeakLocalMax(p, 1, 10, 0)
	if len(peaks) != 1 || peaks[0].X != 4 {
		t.Fatalf("threshold not applied: %+v", peaks)
	}
}
