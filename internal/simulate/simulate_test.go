package simulate

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestNextProducesValidBatches(t *testing.T) {
	s := New(Config{BatchSize: 3, ImageSize: 32, Batches: 2, Seed: 7})
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		b, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("batch %d invalid: %v", i, err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate batch id %q", b.ID)
		}
		seen[b.ID] = true
		if len(b.Catalogs) != 3 {
			t.Fatalf("batch %d: %d truth catalogs", i, len(b.Catalogs))
		}
		for j, cat := range b.Catalogs {
			if cat.Len() == 0 {
				t.Fatalf("batch %d example %d has no sources", i, j)
			}
			for k := 0; k < cat.Len(); k++ {
				if cat.X[k] < 0 || cat.X[k] >= 32 || cat.Y[k] < 0 || cat.Y[k] >= 32 {
					t.Fatalf("source (%g,%g) outside the stamp", cat.X[k], cat.Y[k])
				}
			}
		}
	}
	if _, err := s.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF after the configured batches", err)
	}
}

func TestUnlimitedStream(t *testing.T) {
	s := New(Config{Batches: 0, Seed: 1})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.Next(ctx); err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
	}
}

func TestNextHonoursContext(t *testing.T) {
	s := New(Config{Batches: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestNoNoiseIsDeterministic(t *testing.T) {
	a := New(Config{Batches: 1, Seed: 42, NoNoise: true})
	b := New(Config{Batches: 1, Seed: 42, NoNoise: true})
	ctx := context.Background()
	ba, _ := a.Next(ctx)
	bb, _ := b.Next(ctx)
	if len(ba.Images) != len(bb.Images) {
		t.Fatal("batch sizes differ")
	}
	for i := range ba.Images {
		for band := range ba.Images[i] {
			for y := range ba.Images[i][band] {
				for x := range ba.Images[i][band][y] {
					if ba.Images[i][band][y][x] != bb.Images[i][band][y][x] {
						t.Fatalf("pixel (%d,%d) differs between identically seeded runs", x, y)
					}
				}
			}
		}
	}
}
