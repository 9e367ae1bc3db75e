package generator

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"deblend-core/deblender"
	"deblend-core/scene"
	"deblend/internal/simulate"
)

type namedStrategy struct {
	name string
}

func (s namedStrategy) Name() string    { return s.name }
func (s namedStrategy) MaxSources() int { return 4 }
func (s namedStrategy) Deblend(i int, b *scene.Batch) (*deblender.Example, error) {
	return &deblender.Example{MaxSources: 4, ImageSize: b.ImageSize}, nil
}

func source(batches int) *simulate.Simulator {
	return simulate.New(simulate.Config{
		BatchSize: 2,
		ImageSize: 32,
		Batches:   batches,
		NoNoise:   true,
		Seed:      1,
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, []deblender.Strategy{namedStrategy{"a"}}); err == nil {
		t.Fatal("nil source accepted")
	}
	if _, err := New(source(1), nil); err == nil {
		t.Fatal("empty strategy list accepted")
	}
	var nilPtr *deblender.Peaks
	if _, err := New(source(1), []deblender.Strategy{nilPtr}); err == nil {
		t.Fatal("typed-nil strategy accepted")
	}
	if _, err := New(source(1), []deblender.Strategy{namedStrategy{"a"}, nil}); err == nil {
		t.Fatal("nil interface strategy accepted")
	}
}

func TestUniqueNames(t *testing.T) {
	g, err := New(source(1), []deblender.Strategy{
		namedStrategy{"peaks"},
		namedStrategy{"extract"},
		namedStrategy{"peaks"},
		namedStrategy{"peaks"},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []string{"peaks_0", "extract", "peaks_1", "peaks_2"}
	if got := g.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names %v, want %v", got, want)
	}
}

func TestNextRunsEveryStrategy(t *testing.T) {
	g, err := New(source(1), []deblender.Strategy{
		namedStrategy{"a"},
		namedStrategy{"b"},
	}, WithWorkers(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	b, results, err := g.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if b.ID == "" {
		t.Fatal("batch has no id")
	}
	for _, name := range []string{"a", "b"} {
		res, ok := results[name]
		if !ok {
			t.Fatalf("no result for %q", name)
		}
		if res.BatchSize != b.BatchSize {
			t.Fatalf("%q: batch size %d, want %d", name, res.BatchSize, b.BatchSize)
		}
	}
}

func TestNextEndsWithEOF(t *testing.T) {
	g, _ := New(source(2), []deblender.Strategy{namedStrategy{"a"}})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, _, err := g.Next(ctx); err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
	}
	if _, _, err := g.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
