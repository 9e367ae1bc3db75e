package deblender

import (
	"errors"
	"math"

	"deblend-core/catalog"
	"deblend-core/detect"
	"deblend-core/scene"
)

// PeaksConfig configures the local-maxima strategy.
type PeaksConfig struct {
	MaxSources int
	// SkyLevel is the background level used to scale the detection
	// threshold (assumed constant across the stamp).
	SkyLevel float64
	// ThresholdScale is the number of background sigmas a peak must
	// clear; the absolute threshold is ThresholdScale*sqrt(SkyLevel).
	ThresholdScale float64 // default 5
	// MinDistance is the minimum pixel separation between peaks.
	MinDistance int // default 2
	Reduce      Reduction
}

// Peaks detects source centroids as local intensity maxima on a reduced
// single-band view. It produces a catalogue only, no segmentation.
type Peaks struct {
	cfg PeaksConfig
}

// NewPeaks validates the options and returns the strategy.
func NewPeaks(cfg PeaksConfig) (*Peaks, error) {
	if cfg.MaxSources <= 0 {
		return nil, errors.New("peaks: max sources must be positive")
	}
	if cfg.SkyLevel <= 0 {
		return nil, errors.New("peaks: sky level must be positive")
	}
	if cfg.ThresholdScale <= 0 {
		cfg.ThresholdScale = 5
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = 2
	}
	if err := cfg.Reduce.validate(); err != nil {
		return nil, err
	}
	return &Peaks{cfg: cfg}, nil
}

func (p *Peaks) Name() string    { return "peaks" }
func (p *Peaks) MaxSources() int { return p.cfg.MaxSources }

func (p *Peaks) Deblend(i int, b *scene.Batch) (*Example, error) {
	plane, err := p.cfg.Reduce.apply(b.Images[i])
	if err != nil {
		return nil, err
	}

	threshold := p.cfg.ThresholdScale * math.Sqrt(p.cfg.SkyLevel)
	// The finder caps at MaxSources brightest-first, so this strategy
	// cannot overflow; the surplus is simply the faintest peaks.
	peaks := detect.PeakLocalMax(plane, p.cfg.MinDistance, threshold, p.cfg.MaxSources)

	var cat catalog.Table
	for _, pk := range peaks {
		x, y := float64(pk.X), float64(pk.Y)
		ra, dec := b.WCS.PixelToWorld(x, y)
		cat.Append(ra*3600, dec*3600, x, y)
	}
	return &Example{MaxSources: p.cfg.MaxSources, Catalog: cat, ImageSize: b.ImageSize}, nil
}
