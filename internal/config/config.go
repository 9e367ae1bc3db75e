// Package config loads strategy definitions from a TOML file, so runs
// can mix several tuned strategies without a flag forest:
//
//	[[strategy]]
//	kind = "peaks"
//	max_sources = 10
//	use_mean = true
//
//	[[strategy]]
//	kind = "extract"
//	thresh = 2.0
//	use_band = 2
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"deblend-core/deblender"
	"deblend-core/survey"
)

// Strategy is one [[strategy]] table. Zero-valued numeric fields fall
// back to the strategy's own defaults.
type Strategy struct {
	Kind           string  `toml:"kind"`
	MaxSources     int     `toml:"max_sources"`
	ThresholdScale float64 `toml:"threshold_scale"`
	MinDistance    int     `toml:"min_distance"`
	Thresh         float64 `toml:"thresh"`
	MinArea        int     `toml:"min_area"`
	MatchThreshold float64 `toml:"match_threshold"`
	ERel           float64 `toml:"e_rel"`
	MaxIter        int     `toml:"max_iter"`
	InitSigma      float64 `toml:"init_sigma"`
	UseMean        bool    `toml:"use_mean"`
	UseBand        *int    `toml:"use_band"`
}

// File is the decoded configuration file.
type File struct {
	Strategy []Strategy `toml:"strategy"`
}

// Load reads and decodes a TOML strategy file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes TOML bytes.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(f.Strategy) == 0 {
		return nil, errors.New("config: no [[strategy]] tables")
	}
	return &f, nil
}

func (s Strategy) reduction() (deblender.Reduction, error) {
	switch {
	case s.UseMean && s.UseBand != nil:
		return deblender.Reduction{}, fmt.Errorf("config: strategy %q sets both use_mean and use_band", s.Kind)
	case s.UseMean:
		return deblender.Mean(), nil
	case s.UseBand != nil:
		return deblender.Band(*s.UseBand), nil
	default:
		// Left zero; strategies that need a reduction reject it.
		return deblender.Reduction{}, nil
	}
}

// Build instantiates every configured strategy. maxSources is the
// fallback when a table omits max_sources; sv supplies the sky level.
func (f *File) Build(sv survey.Survey, maxSources int) ([]deblender.Strategy, error) {
	out := make([]deblender.Strategy, 0, len(f.Strategy))
	for i, s := range f.Strategy {
		if s.Kind == "" {
			return nil, fmt.Errorf("config: strategy %d has no kind", i)
		}
		reduce, err := s.reduction()
		if err != nil {
			return nil, err
		}
		ms := s.MaxSources
		if ms <= 0 {
			ms = maxSources
		}
		st, err := deblender.New(s.Kind, deblender.Params{
			MaxSources:     ms,
			SkyLevel:       sv.MeanSkyLevel(),
			ThresholdScale: s.ThresholdScale,
			MinDistance:    s.MinDistance,
			Thresh:         s.Thresh,
			MinArea:        s.MinArea,
			MatchThreshold: s.MatchThreshold,
			ERel:           s.ERel,
			MaxIter:        s.MaxIter,
			InitSigma:      s.InitSigma,
			Reduce:         reduce,
		})
		if err != nil {
			return nil, fmt.Errorf("config: strategy %d (%s): %w", i, s.Kind, err)
		}
		out = append(out, st)
	}
	return out, nil
}
