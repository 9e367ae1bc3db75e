// Package survey carries the photometric metadata the detection
// strategies need: which bands an image cube holds and the expected
// background (sky) level in each.
package survey

import "fmt"

// Filter is one spectral band.
type Filter struct {
	Name string
	// SkyLevel is the expected background level in counts per pixel.
	SkyLevel float64
}

// Survey describes the instrument a scene batch was rendered for.
type Survey struct {
	Name string
	// PixelScale in arcseconds per pixel.
	PixelScale float64
	Filters    []Filter
}

// NBands returns the number of filters.
func (s Survey) NBands() int { return len(s.Filters) }

// Filter looks a filter up by name.
func (s Survey) Filter(name string) (Filter, error) {
	for _, f := range s.Filters {
		if f.Name == name {
			return f, nil
		}
	}
	return Filter{}, fmt.Errorf("survey %q: unknown filter %q", s.Name, name)
}

// SkyLevels returns the per-band background levels in filter order.
func (s Survey) SkyLevels() []float64 {
	out := make([]float64, len(s.Filters))
	for i, f := range s.Filters {
		out[i] = f.SkyLevel
	}
	return out
}

// MeanSkyLevel averages the background level across all filters.
func (s Survey) MeanSkyLevel() float64 {
	if len(s.Filters) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range s.Filters {
		sum += f.SkyLevel
	}
	return sum / float64(len(s.Filters))
}
