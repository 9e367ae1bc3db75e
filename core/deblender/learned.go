package deblender

import (
	"errors"
	"fmt"

	"deblend-core/catalog"
	"deblend-core/image"
	"deblend-core/scene"
)

// Box is a detection bounding box in pixel coordinates.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Center returns the box centre.
func (b Box) Center() (x, y float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Prediction is the raw output of a detection/segmentation model,
// ordered by descending model score. Boxes and Masks run in parallel.
type Prediction struct {
	Boxes []Box
	Masks []image.Mask
}

// Predictor is a pre-loaded inference model. Implementations load their
// weights once at construction and must be safe for concurrent Predict
// calls; the toolkit treats them as read-only black boxes.
type Predictor interface {
	Predict(c image.Cube) (Prediction, error)
}

// LearnedConfig configures the model-backed strategy.
type LearnedConfig struct {
	MaxSources int
	// AllowOverflow keeps detections beyond MaxSources in the extra
	// payload instead of failing. The fixed-size catalogue and stacks
	// then hold the first MaxSources detections in model score order.
	AllowOverflow bool
}

// Learned runs a pre-loaded model once per example and converts its
// boxes and masks into the standard result shape.
type Learned struct {
	cfg  LearnedConfig
	pred Predictor
}

// NewLearned validates the options and returns the strategy.
func NewLearned(pred Predictor, cfg LearnedConfig) (*Learned, error) {
	if pred == nil {
		return nil, errors.New("learned: nil predictor")
	}
	if cfg.MaxSources <= 0 {
		return nil, errors.New("learned: max sources must be positive")
	}
	return &Learned{cfg: cfg, pred: pred}, nil
}

func (l *Learned) Name() string    { return "learned" }
func (l *Learned) MaxSources() int { return l.cfg.MaxSources }

func (l *Learned) Deblend(i int, b *scene.Batch) (*Example, error) {
	cube := b.Images[i]
	pr, err := l.pred.Predict(cube)
	if err != nil {
		return nil, fmt.Errorf("learned: predict: %w", err)
	}
	n := len(pr.Boxes)
	if len(pr.Masks) != n {
		return nil, fmt.Errorf("learned: predictor returned %d masks for %d boxes", len(pr.Masks), n)
	}
	if n > l.cfg.MaxSources && !l.cfg.AllowOverflow {
		return nil, overflowErr(l.Name(), n, l.cfg.MaxSources,
			"raise the model score threshold, increase max_sources, or enable allow_overflow")
	}

	var full catalog.Table
	for _, box := range pr.Boxes {
		x, y := box.Center()
		ra, dec := b.WCS.PixelToWorld(x, y)
		full.Append(ra*3600, dec*3600, x, y)
	}

	size := b.ImageSize
	bands := cube.Bands()
	kept := n
	if kept > l.cfg.MaxSources {
		kept = l.cfg.MaxSources
	}

	seg := make([]image.Mask, l.cfg.MaxSources)
	debl := make([]image.Cube, l.cfg.MaxSources)
	for j := range seg {
		if j < kept {
			seg[j] = pr.Masks[j]
			debl[j] = cube.Masked(pr.Masks[j])
		} else {
			seg[j] = image.NewMask(size, size)
			debl[j] = image.NewCube(bands, size, size)
		}
	}

	extra := map[string]any{}
	if n > kept {
		overCubes := make([]image.Cube, 0, n-kept)
		for j := kept; j < n; j++ {
			overCubes = append(overCubes, cube.Masked(pr.Masks[j]))
		}
		extra["catalog"] = full.Slice(kept, n)
		extra["segmentation"] = pr.Masks[kept:]
		extra["deblended"] = overCubes
	}

	return &Example{
		MaxSources:   l.cfg.MaxSources,
		Catalog:      full.Slice(0, kept),
		NBands:       bands,
		ImageSize:    size,
		Segmentation: seg,
		Deblended:    debl,
		Extra:        extra,
	}, nil
}
