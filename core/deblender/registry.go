package deblender

import "fmt"

// Params is the flat parameter set the registry factories draw from, so
// configuration layers can instantiate any named strategy from one
// decoded table. Fields a strategy does not use are ignored.
type Params struct {
	MaxSources     int
	SkyLevel       float64
	ThresholdScale float64
	MinDistance    int
	Thresh         float64
	MinArea        int
	MatchThreshold float64
	ERel           float64
	MaxIter        int
	InitSigma      float64
	Reduce         Reduction
}

// Factory builds a strategy instance from flat parameters.
type Factory func(Params) (Strategy, error)

// Available maps strategy names to factories. The learned strategy is
// absent on purpose: it needs a loaded model and is constructed
// programmatically via NewLearned.
var Available = map[string]Factory{
	"peaks": func(p Params) (Strategy, error) {
		return NewPeaks(PeaksConfig{
			MaxSources:     p.MaxSources,
			SkyLevel:       p.SkyLevel,
			ThresholdScale: p.ThresholdScale,
			MinDistance:    p.MinDistance,
			Reduce:         p.Reduce,
		})
	},
	"extract": func(p Params) (Strategy, error) {
		return NewSingleBand(SingleBandConfig{
			MaxSources: p.MaxSources,
			Thresh:     p.Thresh,
			MinArea:    p.MinArea,
			Reduce:     p.Reduce,
		})
	},
	"extract-multi": func(p Params) (Strategy, error) {
		return NewMultiBand(MultiBandConfig{
			MaxSources:     p.MaxSources,
			MatchThreshold: p.MatchThreshold,
			Thresh:         p.Thresh,
			MinArea:        p.MinArea,
		})
	},
	"profile-fit": func(p Params) (Strategy, error) {
		return NewProfileFit(ProfileFitConfig{
			MaxSources: p.MaxSources,
			ERel:       p.ERel,
			MaxIter:    p.MaxIter,
			InitSigma:  p.InitSigma,
		})
	},
}

// New instantiates a registered strategy by name.
func New(name string, p Params) (Strategy, error) {
	f, ok := Available[name]
	if !ok {
		return nil, fmt.Errorf("deblender: unknown strategy %q", name)
	}
	return f(p)
}
