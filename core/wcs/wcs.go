// Package wcs maps between pixel and sky coordinates.
package wcs

// Mapping is a linear small-field world coordinate system: the sky is
// treated as locally flat around the reference pixel at the centre of
// the stamp. Good to well under a milliarcsecond at the arcminute
// scales this toolkit works on.
type Mapping struct {
	// Reference sky position (degrees) at the reference pixel.
	RA0, Dec0 float64
	// Reference pixel (zero-based, may be fractional).
	X0, Y0 float64
	// Pixel scale in degrees per pixel.
	Scale float64
}

// New places the reference pixel at the centre of an imageSize×imageSize
// stamp. scaleArcsec is the pixel scale in arcseconds.
func New(raDeg, decDeg, scaleArcsec float64, imageSize int) *Mapping {
	c := float64(imageSize-1) / 2
	return &Mapping{RA0: raDeg, Dec0: decDeg, X0: c, Y0: c, Scale: scaleArcsec / 3600}
}

// PixelToWorld converts pixel coordinates to (ra, dec) in degrees.
func (m *Mapping) PixelToWorld(x, y float64) (ra, dec float64) {
	ra = m.RA0 + (x-m.X0)*m.Scale
	dec = m.Dec0 + (y-m.Y0)*m.Scale
	return ra, dec
}

// WorldToPixel converts (ra, dec) in degrees to pixel coordinates.
func (m *Mapping) WorldToPixel(ra, dec float64) (x, y float64) {
	x = m.X0 + (ra-m.RA0)/m.Scale
	y = m.Y0 + (dec-m.Dec0)/m.Scale
	return x, y
}
