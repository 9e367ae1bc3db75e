// Package simulate renders small synthetic blend scenes: Gaussian
// sources on a flat sky with Gaussian noise. It stands in for a real
// scene renderer in the CLI and in tests; production pipelines plug
// their own generator.SceneSource in.
package simulate

import (
	"context"
	"io"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"deblend-core/catalog"
	"deblend-core/image"
	"deblend-core/profile"
	"deblend-core/scene"
	"deblend-core/survey"
	"deblend-core/wcs"
)

// DefaultSurvey is a three-band toy survey with plausible sky levels.
func DefaultSurvey() survey.Survey {
	return survey.Survey{
		Name:       "demo",
		PixelScale: 0.2,
		Filters: []survey.Filter{
			{Name: "g", SkyLevel: 400},
			{Name: "r", SkyLevel: 800},
			{Name: "i", SkyLevel: 1100},
		},
	}
}

// Config controls the simulator. Zero values pick the defaults noted.
type Config struct {
	BatchSize int // default 4
	ImageSize int // default 64
	// Batches ends the stream with io.EOF after this many batches;
	// 0 means unlimited.
	Batches int
	// MinSources..MaxSources is the per-scene source count range
	// (defaults 1..3).
	MinSources int
	MaxSources int
	// MinFlux..MaxFlux is the peak amplitude range (defaults 500..1500).
	MinFlux float64
	MaxFlux float64
	// Margin keeps source centres this many pixels off the edge
	// (default 8).
	Margin int
	// NoNoise renders noise-free scenes, useful in tests.
	NoNoise bool
	Seed    int64
	Survey  survey.Survey
}

func (c *Config) fill() {
	if c.BatchSize <= 0 {
		c.BatchSize = 4
	}
	if c.ImageSize <= 0 {
		c.ImageSize = 64
	}
	if c.MinSources <= 0 {
		c.MinSources = 1
	}
	if c.MaxSources < c.MinSources {
		c.MaxSources = c.MinSources + 2
	}
	if c.MinFlux <= 0 {
		c.MinFlux = 500
	}
	if c.MaxFlux < c.MinFlux {
		c.MaxFlux = 1500
	}
	if c.Margin <= 0 {
		c.Margin = 8
	}
	if c.Survey.NBands() == 0 {
		c.Survey = DefaultSurvey()
	}
}

// Simulator implements generator.SceneSource.
type Simulator struct {
	cfg     Config
	rng     *rand.Rand
	emitted int
}

// New returns a simulator with the given configuration.
func New(cfg Config) *Simulator {
	cfg.fill()
	return &Simulator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Next renders one scene batch. Images are sky-subtracted: the noise is
// centred on zero with sigma sqrt(sky level), so detection thresholds
// scale directly from the survey metadata.
func (s *Simulator) Next(ctx context.Context) (*scene.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cfg.Batches > 0 && s.emitted >= s.cfg.Batches {
		return nil, io.EOF
	}
	s.emitted++

	size := s.cfg.ImageSize
	sv := s.cfg.Survey
	m := wcs.New(150.0, 2.0, sv.PixelScale, size)

	b := &scene.Batch{
		ID:        uuid.NewString(),
		BatchSize: s.cfg.BatchSize,
		ImageSize: size,
		WCS:       m,
		Survey:    sv,
		Images:    make([]image.Cube, s.cfg.BatchSize),
		Catalogs:  make([]catalog.Table, s.cfg.BatchSize),
	}

	for i := 0; i < s.cfg.BatchSize; i++ {
		cube := image.NewCube(sv.NBands(), size, size)
		var truth catalog.Table

		n := s.cfg.MinSources + s.rng.Intn(s.cfg.MaxSources-s.cfg.MinSources+1)
		for j := 0; j < n; j++ {
			x := float64(s.cfg.Margin) + s.rng.Float64()*float64(size-2*s.cfg.Margin)
			y := float64(s.cfg.Margin) + s.rng.Float64()*float64(size-2*s.cfg.Margin)
			sigma := 1.2 + 0.8*s.rng.Float64()
			flux := s.cfg.MinFlux + s.rng.Float64()*(s.cfg.MaxFlux-s.cfg.MinFlux)
			for band := range cube {
				// Mild colour variation across bands.
				amp := flux * (0.8 + 0.4*s.rng.Float64())
				profile.AddGaussian(cube[band], x, y, sigma, amp)
			}
			ra, dec := m.PixelToWorld(x, y)
			truth.Append(ra*3600, dec*3600, x, y)
		}

		if !s.cfg.NoNoise {
			for band, f := range sv.Filters {
				sd := math.Sqrt(f.SkyLevel)
				p := cube[band]
				for yy := range p {
					for xx := range p[yy] {
						p[yy][xx] += s.rng.NormFloat64() * sd
					}
				}
			}
		}

		b.Images[i] = cube
		b.Catalogs[i] = truth
	}
	return b, nil
}
