// Package deblender defines the detection-strategy contract and the
// concrete strategies shipped with the toolkit. A strategy turns one
// example of a scene batch into a detection catalogue plus optional
// segmentation and per-source deblended images.
package deblender

import (
	"context"
	"errors"
	"fmt"

	"deblend-core/scene"
)

var (
	// ErrTooManySources reports more detections than the configured
	// maximum. Truncating silently would bias downstream metrics, so
	// this is surfaced to the caller unless an overflow policy is in
	// effect.
	ErrTooManySources = errors.New("deblender: detections exceed max sources")

	// ErrNotImplemented marks batch paths that have no default
	// aggregation behaviour.
	ErrNotImplemented = errors.New("deblender: not implemented")
)

// Strategy is one detection/deblending algorithm. Deblend must be safe
// to call concurrently for different indices: implementations hold only
// read-only state after construction.
type Strategy interface {
	// Name is the registry/base name, e.g. "peaks".
	Name() string
	// MaxSources is the fixed per-example source capacity.
	MaxSources() int
	// Deblend runs the algorithm on the i-th example of b.
	Deblend(i int, b *scene.Batch) (*Example, error)
}

// BatchDeblender is implemented by strategies that replace the default
// per-example fan-out with their own batch-level execution.
type BatchDeblender interface {
	DeblendBatch(ctx context.Context, b *scene.Batch, workers int) (*Batch, error)
}

// overflowErr wraps ErrTooManySources with the offending strategy name,
// the counts, and a remedy hint.
func overflowErr(name string, n, max int, hint string) error {
	return fmt.Errorf("%s: %w (%d > %d); %s", name, ErrTooManySources, n, max, hint)
}
