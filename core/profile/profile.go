// Package profile renders circular Gaussian light profiles and fits
// them to image cubes given candidate source centres.
package profile

import (
	"math"

	"deblend-core/image"
)

// Center is a candidate source position in pixel coordinates.
type Center struct {
	X, Y float64
}

// AddGaussian accumulates a circular Gaussian of the given width and
// amplitude into p.
func AddGaussian(p image.Plane, x0, y0, sigma, amp float64) {
	inv := 1 / (2 * sigma * sigma)
	for y := range p {
		dy := float64(y) - y0
		for x := range p[y] {
			dx := float64(x) - x0
			p[y][x] += amp * math.Exp(-(dx*dx+dy*dy)*inv)
		}
	}
}

// Gaussian returns a size×size plane holding a single Gaussian.
func Gaussian(size int, x0, y0, sigma, amp float64) image.Plane {
	p := image.NewPlane(size, size)
	AddGaussian(p, x0, y0, sigma, amp)
	return p
}

// basis returns one unit-amplitude Gaussian plane per centre.
func basis(size int, centers []Center, sigma float64) []image.Plane {
	out := make([]image.Plane, len(centers))
	for i, c := range centers {
		out[i] = Gaussian(size, c.X, c.Y, sigma, 1)
	}
	return out
}
