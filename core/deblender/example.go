package deblender

import (
	"fmt"

	"deblend-core/catalog"
	"deblend-core/image"
)

// Example is the result of one strategy call on one example. Optional
// fields are nil when the strategy does not produce them; when present,
// stacks are zero-padded to exactly MaxSources entries.
type Example struct {
	MaxSources int
	Catalog    catalog.Table
	// NBands is the band count of Deblended; 0 when Deblended is nil.
	NBands    int
	ImageSize int
	// Segmentation holds one footprint per catalogued source.
	Segmentation []image.Mask
	// Deblended holds one isolated-source cube per catalogued source.
	Deblended []image.Cube
	// Extra is an opaque strategy-specific payload (e.g. overflow
	// detections).
	Extra map[string]any
}

// Validate checks the fixed-shape invariants of a result.
func (e *Example) Validate() error {
	if e.Catalog.Len() > e.MaxSources {
		return fmt.Errorf("deblender: result has %d rows for max sources %d", e.Catalog.Len(), e.MaxSources)
	}
	if e.Segmentation != nil && len(e.Segmentation) != e.MaxSources {
		return fmt.Errorf("deblender: segmentation stack has %d entries, want %d", len(e.Segmentation), e.MaxSources)
	}
	if e.Deblended != nil && len(e.Deblended) != e.MaxSources {
		return fmt.Errorf("deblender: deblended stack has %d entries, want %d", len(e.Deblended), e.MaxSources)
	}
	return nil
}

// Batch aggregates the per-example results of one strategy over one
// scene batch. Optional fields mirror Example: either every example
// contributed, or the field is nil for the whole batch.
type Batch struct {
	BatchSize  int
	MaxSources int
	Catalogs   []catalog.Table
	NBands     int
	ImageSize  int
	Segmentation [][]image.Mask
	Deblended    [][]image.Cube
	Extra        []map[string]any
}
