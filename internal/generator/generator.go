// Package generator drives the deblending loop: pull a scene batch from
// the upstream source, run every configured strategy over it, hand back
// the batch together with the per-strategy results.
package generator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"deblend-core/deblender"
	"deblend-core/scene"
	"deblend/internal/orchestrator"
)

// SceneSource is the upstream scene renderer/simulator. Next returns
// io.EOF when the stream ends.
type SceneSource interface {
	Next(ctx context.Context) (*scene.Batch, error)
}

// Option adjusts a Generator at construction.
type Option func(*Generator)

// WithWorkers sets the per-batch worker count (default 1).
func WithWorkers(n int) Option { return func(g *Generator) { g.workers = n } }

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(g *Generator) { g.log = l } }

// Generator runs one or more named strategy instances over every batch
// from a scene source.
type Generator struct {
	src        SceneSource
	strategies []deblender.Strategy
	names      []string
	workers    int
	log        zerolog.Logger
}

// New validates the strategy list and assigns unique names. Every entry
// must be a constructed instance: nil interfaces and nil typed pointers
// are configuration errors, not runtime surprises.
func New(src SceneSource, strategies []deblender.Strategy, opts ...Option) (*Generator, error) {
	if src == nil {
		return nil, errors.New("generator: nil scene source")
	}
	if len(strategies) == 0 {
		return nil, errors.New("generator: no strategies supplied")
	}
	for i, s := range strategies {
		if isNilStrategy(s) {
			return nil, fmt.Errorf("generator: strategy %d is not an instance; construct it first", i)
		}
	}

	g := &Generator{
		src:        src,
		strategies: strategies,
		names:      uniqueNames(strategies),
		workers:    1,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Names returns the unique instance names in supplied order.
func (g *Generator) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Next pulls the next scene batch and runs every strategy on it. The
// returned map is keyed by the unique instance names.
func (g *Generator) Next(ctx context.Context) (*scene.Batch, map[string]*deblender.Batch, error) {
	b, err := g.src.Next(ctx)
	if err != nil {
		return nil, nil, err
	}

	results := make(map[string]*deblender.Batch, len(g.strategies))
	for i, s := range g.strategies {
		start := time.Now()
		res, err := orchestrator.RunBatch(ctx, s, b, g.workers)
		if err != nil {
			return nil, nil, fmt.Errorf("generator: %s: %w", g.names[i], err)
		}
		n := 0
		for _, c := range res.Catalogs {
			n += c.Len()
		}
		g.log.Debug().
			Str("batch", b.ID).
			Str("strategy", g.names[i]).
			Int("detections", n).
			Dur("elapsed", time.Since(start)).
			Msg("deblended batch")
		results[g.names[i]] = res
	}
	return b, results, nil
}

// uniqueNames suffixes duplicated base names with _0, _1, ... in
// supplied order; unique base names are kept as-is.
func uniqueNames(strategies []deblender.Strategy) []string {
	names := make([]string, len(strategies))
	counts := map[string]int{}
	for i, s := range strategies {
		names[i] = s.Name()
		counts[names[i]]++
	}
	next := map[string]int{}
	for i, n := range names {
		if counts[n] > 1 {
			names[i] = fmt.Sprintf("%s_%d", n, next[n])
			next[n]++
		}
	}
	return names
}

func isNilStrategy(s deblender.Strategy) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
