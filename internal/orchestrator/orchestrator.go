// Package orchestrator fans a detection strategy out over the examples
// of a scene batch and reconciles the per-example results into one
// fixed-shape batch result.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"deblend-core/catalog"
	"deblend-core/deblender"
	"deblend-core/image"
	"deblend-core/scene"
)

// ErrMixedOptionalFields reports examples within one batch that
// disagree on which optional result fields they populate. Aggregating
// such a batch would silently drop the minority examples' data, so it
// fails instead.
var ErrMixedOptionalFields = errors.New("orchestrator: optional result fields differ across the batch")

// RunBatch executes strategy s on every example of b across the given
// number of workers (<=1 means sequential) and returns results in
// example order regardless of completion order. The first example to
// fail aborts the whole call; no partial batch is returned.
//
// Strategies implementing deblender.BatchDeblender take over the whole
// batch instead.
func RunBatch(ctx context.Context, s deblender.Strategy, b *scene.Batch, workers int) (*deblender.Batch, error) {
	if s == nil {
		return nil, errors.New("orchestrator: nil strategy")
	}
	if b == nil {
		return nil, errors.New("orchestrator: nil batch")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if bd, ok := s.(deblender.BatchDeblender); ok {
		return bd.DeblendBatch(ctx, b, workers)
	}
	if workers < 1 {
		workers = 1
	}

	// Results land in their example's slot, never append-on-completion:
	// that is what keeps output order equal to input order.
	out := make([]*deblender.Example, b.BatchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < b.BatchSize; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ex, err := s.Deblend(i, b)
			if err != nil {
				return fmt.Errorf("example %d: %w", i, err)
			}
			if err := ex.Validate(); err != nil {
				return fmt.Errorf("example %d: %w", i, err)
			}
			out[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	return reconcile(b, s.MaxSources(), out)
}

// reconcile stacks per-example results into batch arrays. Whether the
// optional fields are materialized is decided by the first example; a
// later example disagreeing is an error rather than silent data loss.
func reconcile(b *scene.Batch, maxSources int, out []*deblender.Example) (*deblender.Batch, error) {
	res := &deblender.Batch{
		BatchSize:  b.BatchSize,
		MaxSources: maxSources,
		ImageSize:  b.ImageSize,
		Catalogs:   make([]catalog.Table, len(out)),
	}
	for i, ex := range out {
		res.Catalogs[i] = ex.Catalog
	}

	first := out[0]
	if first.Segmentation != nil {
		res.Segmentation = make([][]image.Mask, len(out))
		for i, ex := range out {
			if ex.Segmentation == nil {
				return nil, fmt.Errorf("%w: example %d has no segmentation", ErrMixedOptionalFields, i)
			}
			res.Segmentation[i] = ex.Segmentation
		}
	}
	if first.Deblended != nil {
		res.Deblended = make([][]image.Cube, len(out))
		for i, ex := range out {
			if ex.Deblended == nil {
				return nil, fmt.Errorf("%w: example %d has no deblended images", ErrMixedOptionalFields, i)
			}
			res.Deblended[i] = ex.Deblended
		}
		res.NBands = first.NBands
	}
	if first.Extra != nil {
		res.Extra = make([]map[string]any, len(out))
		for i, ex := range out {
			res.Extra[i] = ex.Extra
		}
	}
	return res, nil
}
