package deblender

import (
	"errors"
	"fmt"

	"deblend-core/catalog"
	"deblend-core/detect"
	"deblend-core/scene"
	"deblend-core/skymatch"
)

// MultiBandConfig configures the cross-band merge strategy.
type MultiBandConfig struct {
	MaxSources int
	// MatchThreshold is the angular separation in arcseconds below
	// which (or at which) two detections count as the same source.
	MatchThreshold float64 // default 1.0
	// Thresh and MinArea are passed to the per-band extraction.
	Thresh  float64 // default 1.5
	MinArea int     // default 5
}

// MultiBand runs source extraction independently on every band and
// merges the per-band catalogues into one deduplicated source list.
// Bands are processed in cube order (0..n-1) and the running set grows
// greedily, so band order is part of the contract: a source detected in
// an earlier band owns its position.
type MultiBand struct {
	cfg MultiBandConfig
}

// NewMultiBand validates the options and returns the strategy.
func NewMultiBand(cfg MultiBandConfig) (*MultiBand, error) {
	if cfg.MaxSources <= 0 {
		return nil, errors.New("extract-multi: max sources must be positive")
	}
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = 1.0
	}
	if cfg.Thresh <= 0 {
		cfg.Thresh = 1.5
	}
	if cfg.MinArea <= 0 {
		cfg.MinArea = 5
	}
	return &MultiBand{cfg: cfg}, nil
}

func (m *MultiBand) Name() string    { return "extract-multi" }
func (m *MultiBand) MaxSources() int { return m.cfg.MaxSources }

func (m *MultiBand) Deblend(i int, b *scene.Batch) (*Example, error) {
	cube := b.Images[i]

	var merged skymatch.Coords
	for band := 0; band < cube.Bands(); band++ {
		objs, _, _ := detect.Extract(cube.Band(band), m.cfg.Thresh, m.cfg.MinArea)
		if len(objs) > m.cfg.MaxSources {
			return nil, fmt.Errorf("band %d: %w", band,
				overflowErr(m.Name(), len(objs), m.cfg.MaxSources, "increase thresh or max_sources"))
		}

		var cand skymatch.Coords
		for _, o := range objs {
			ra, dec := b.WCS.PixelToWorld(o.X, o.Y)
			cand.Append(ra*3600, dec*3600)
		}
		keep := skymatch.Survivors(merged, cand, m.cfg.MatchThreshold)
		for k, ok := range keep {
			if ok {
				merged.Append(cand.RA[k], cand.Dec[k])
			}
		}
	}
	if merged.Len() > m.cfg.MaxSources {
		return nil, overflowErr(m.Name(), merged.Len(), m.cfg.MaxSources,
			"increase match_threshold or max_sources")
	}

	var cat catalog.Table
	for k := range merged.RA {
		x, y := b.WCS.WorldToPixel(merged.RA[k]/3600, merged.Dec[k]/3600)
		cat.Append(merged.RA[k], merged.Dec[k], x, y)
	}
	return &Example{MaxSources: m.cfg.MaxSources, Catalog: cat, ImageSize: b.ImageSize}, nil
}
