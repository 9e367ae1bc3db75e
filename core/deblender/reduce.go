package deblender

import (
	"errors"
	"fmt"

	"deblend-core/image"
)

// Reduction selects the single-band view a strategy operates on:
// either the cross-band mean or one specific band. The zero value is
// invalid; use Mean or Band so the choice is always explicit.
type Reduction struct {
	set     bool
	useMean bool
	band    int
}

// Mean reduces a cube to the average of all bands.
func Mean() Reduction { return Reduction{set: true, useMean: true} }

// Band reduces a cube to band i.
func Band(i int) Reduction { return Reduction{set: true, band: i} }

func (r Reduction) validate() error {
	if !r.set {
		return errors.New("deblender: no band reduction selected; use Mean() or Band(i)")
	}
	if !r.useMean && r.band < 0 {
		return fmt.Errorf("deblender: negative band index %d", r.band)
	}
	return nil
}

func (r Reduction) apply(c image.Cube) (image.Plane, error) {
	if r.useMean {
		return c.Mean(), nil
	}
	if r.band >= c.Bands() {
		return nil, fmt.Errorf("deblender: band %d out of range (cube has %d)", r.band, c.Bands())
	}
	return c.Band(r.band), nil
}
