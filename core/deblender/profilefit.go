package deblender

import (
	"errors"
	"fmt"

	"deblend-core/catalog"
	"deblend-core/image"
	"deblend-core/profile"
	"deblend-core/scene"
)

// ProfileFitConfig configures the generative model-fitting strategy.
type ProfileFitConfig struct {
	MaxSources int
	// ERel is the relative loss tolerance ending the iteration.
	ERel float64 // default 1e-5
	// MaxIter caps the optimization.
	MaxIter int // default 200
	// InitSigma is the starting profile width in pixels.
	InitSigma float64 // default 1.5
	// Reference optionally supplies per-example candidate catalogues;
	// when nil the batch's truth catalogues are used.
	Reference []catalog.Table
}

// ProfileFit fits one circular Gaussian per candidate centre to the
// full image cube with a per-band noise model from the survey's sky
// levels, then renders each fitted source back into its own cube.
//
// Centres that make the linear system singular (two sources on the same
// pixel) are a recoverable condition: the example yields an empty
// catalogue and all-zero images instead of failing the batch.
type ProfileFit struct {
	cfg ProfileFitConfig
}

// NewProfileFit validates the options and returns the strategy.
func NewProfileFit(cfg ProfileFitConfig) (*ProfileFit, error) {
	if cfg.MaxSources <= 0 {
		return nil, errors.New("profile-fit: max sources must be positive")
	}
	if cfg.ERel <= 0 {
		cfg.ERel = 1e-5
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 200
	}
	if cfg.InitSigma <= 0 {
		cfg.InitSigma = 1.5
	}
	return &ProfileFit{cfg: cfg}, nil
}

func (p *ProfileFit) Name() string    { return "profile-fit" }
func (p *ProfileFit) MaxSources() int { return p.cfg.MaxSources }

func (p *ProfileFit) Deblend(i int, b *scene.Batch) (*Example, error) {
	var cat catalog.Table
	switch {
	case p.cfg.Reference != nil:
		if i >= len(p.cfg.Reference) {
			return nil, fmt.Errorf("profile-fit: no reference catalog for example %d", i)
		}
		cat = p.cfg.Reference[i]
	case b.Catalogs != nil:
		cat = b.Catalogs[i]
	default:
		return nil, errors.New("profile-fit: batch has no truth catalogs and no reference was supplied")
	}

	bands := b.Survey.NBands()
	if cat.Len() == 0 {
		return p.emptyExample(bands, b.ImageSize), nil
	}
	if cat.Len() > p.cfg.MaxSources {
		return nil, overflowErr(p.Name(), cat.Len(), p.cfg.MaxSources,
			"increase max_sources or trim the reference catalog")
	}

	centers := make([]profile.Center, cat.Len())
	for j := range centers {
		x, y := b.WCS.WorldToPixel(cat.RA[j]/3600, cat.Dec[j]/3600)
		centers[j] = profile.Center{X: x, Y: y}
	}
	weights := make([]float64, bands)
	for j, sky := range b.Survey.SkyLevels() {
		if sky > 0 {
			weights[j] = 1 / sky
		} else {
			weights[j] = 1
		}
	}

	res, err := profile.Fit(b.Images[i], centers, weights, profile.Config{
		InitSigma: p.cfg.InitSigma,
		ERel:      p.cfg.ERel,
		MaxIter:   p.cfg.MaxIter,
	})
	if errors.Is(err, profile.ErrDegenerate) {
		return p.emptyExample(bands, b.ImageSize), nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile-fit: %w", err)
	}

	debl := make([]image.Cube, p.cfg.MaxSources)
	for j := range debl {
		if j < len(res.Sources) {
			debl[j] = res.Render(j, bands)
		} else {
			debl[j] = image.NewCube(bands, b.ImageSize, b.ImageSize)
		}
	}

	return &Example{
		MaxSources: p.cfg.MaxSources,
		Catalog:    cat,
		NBands:     bands,
		ImageSize:  b.ImageSize,
		Deblended:  debl,
		Extra: map[string]any{
			"iterations": res.Iterations,
			"converged":  res.Converged,
			"loss":       res.Loss,
		},
	}, nil
}

// emptyExample is the recovery result for empty or degenerate inputs:
// no rows, all-zero images of the declared shape.
func (p *ProfileFit) emptyExample(bands, size int) *Example {
	debl := make([]image.Cube, p.cfg.MaxSources)
	for j := range debl {
		debl[j] = image.NewCube(bands, size, size)
	}
	return &Example{
		MaxSources: p.cfg.MaxSources,
		NBands:     bands,
		ImageSize:  size,
		Deblended:  debl,
		Extra:      map[string]any{"iterations": 0, "converged": false, "loss": 0.0},
	}
}
