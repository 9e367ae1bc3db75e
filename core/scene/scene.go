// Package scene defines the input batch consumed from an upstream
// scene renderer. The renderer itself lives outside this module; the
// core only reads these structures.
package scene

import (
	"errors"
	"fmt"

	"deblend-core/catalog"
	"deblend-core/image"
	"deblend-core/survey"
	"deblend-core/wcs"
)

var ErrEmptyBatch = errors.New("scene: empty batch")

// Batch is one batch of rendered blend scenes. It is read-only to the
// detection code: strategies and workers must never mutate it.
type Batch struct {
	// ID identifies the batch for bookkeeping in outputs and logs.
	ID string
	// BatchSize is the number of examples; Images has this length.
	BatchSize int
	// ImageSize is the stamp side length in pixels (stamps are square).
	ImageSize int
	// Images holds one [bands][H][W] cube per example.
	Images []image.Cube
	// WCS maps pixel to sky coordinates; shared by all examples.
	WCS *wcs.Mapping
	// Survey carries band names and background levels.
	Survey survey.Survey
	// Catalogs optionally holds per-example truth catalogs.
	Catalogs []catalog.Table
}

// Validate checks internal consistency before a batch run.
func (b *Batch) Validate() error {
	if b.BatchSize <= 0 || len(b.Images) == 0 {
		return ErrEmptyBatch
	}
	if len(b.Images) != b.BatchSize {
		return fmt.Errorf("scene: %d images for batch size %d", len(b.Images), b.BatchSize)
	}
	if b.WCS == nil {
		return errors.New("scene: nil wcs")
	}
	nb := b.Survey.NBands()
	for i, c := range b.Images {
		if c.Bands() != nb {
			return fmt.Errorf("scene: example %d has %d bands, survey has %d", i, c.Bands(), nb)
		}
		if c.Height() != b.ImageSize || c.Width() != b.ImageSize {
			return fmt.Errorf("scene: example %d is %dx%d, want %d", i, c.Height(), c.Width(), b.ImageSize)
		}
	}
	if b.Catalogs != nil && len(b.Catalogs) != b.BatchSize {
		return fmt.Errorf("scene: %d truth catalogs for batch size %d", len(b.Catalogs), b.BatchSize)
	}
	return nil
}

// MultiBatch groups batches of the same scenes rendered for several
// surveys at their native resolutions, keyed by survey name.
type MultiBatch struct {
	Surveys []string
	Batches map[string]*Batch
}

// Validate checks that every listed survey has a batch.
func (m *MultiBatch) Validate() error {
	if len(m.Surveys) < 2 {
		return errors.New("scene: a multi-resolution batch needs at least two surveys")
	}
	for _, name := range m.Surveys {
		b, ok := m.Batches[name]
		if !ok || b == nil {
			return fmt.Errorf("scene: missing batch for survey %q", name)
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("scene: survey %q: %w", name, err)
		}
	}
	return nil
}
