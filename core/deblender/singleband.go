package deblender

import (
	"errors"

	"deblend-core/catalog"
	"deblend-core/detect"
	"deblend-core/image"
	"deblend-core/scene"
)

// SingleBandConfig configures the extraction strategy.
type SingleBandConfig struct {
	MaxSources int
	// Thresh is the detection threshold in background-rms units.
	Thresh float64 // default 1.5
	// MinArea is the minimum footprint size in pixels.
	MinArea int // default 5
	Reduce  Reduction
}

// SingleBand runs background-subtracting source extraction on one
// reduced band and returns a catalogue, a segmentation stack, and
// deblended images obtained by masking the reduced image with each
// object's footprint.
type SingleBand struct {
	cfg SingleBandConfig
}

// NewSingleBand validates the options and returns the strategy.
func NewSingleBand(cfg SingleBandConfig) (*SingleBand, error) {
	if cfg.MaxSources <= 0 {
		return nil, errors.New("extract: max sources must be positive")
	}
	if cfg.Thresh <= 0 {
		cfg.Thresh = 1.5
	}
	if cfg.MinArea <= 0 {
		cfg.MinArea = 5
	}
	if err := cfg.Reduce.validate(); err != nil {
		return nil, err
	}
	return &SingleBand{cfg: cfg}, nil
}

func (s *SingleBand) Name() string    { return "extract" }
func (s *SingleBand) MaxSources() int { return s.cfg.MaxSources }

func (s *SingleBand) Deblend(i int, b *scene.Batch) (*Example, error) {
	plane, err := s.cfg.Reduce.apply(b.Images[i])
	if err != nil {
		return nil, err
	}

	objs, labels, _ := detect.Extract(plane, s.cfg.Thresh, s.cfg.MinArea)
	if len(objs) > s.cfg.MaxSources {
		return nil, overflowErr(s.Name(), len(objs), s.cfg.MaxSources,
			"increase thresh or max_sources")
	}

	size := b.ImageSize
	seg := make([]image.Mask, s.cfg.MaxSources)
	debl := make([]image.Cube, s.cfg.MaxSources)
	for j := range seg {
		seg[j] = image.NewMask(size, size)
		debl[j] = image.NewCube(1, size, size)
	}

	var cat catalog.Table
	for j, o := range objs {
		m := labels.MaskOf(o.Label)
		seg[j] = m
		debl[j] = image.Cube{plane.Masked(m)}
		ra, dec := b.WCS.PixelToWorld(o.X, o.Y)
		cat.Append(ra*3600, dec*3600, o.X, o.Y)
	}

	return &Example{
		MaxSources:   s.cfg.MaxSources,
		Catalog:      cat,
		NBands:       1,
		ImageSize:    size,
		Segmentation: seg,
		Deblended:    debl,
	}, nil
}
