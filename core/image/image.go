// Package image holds the in-memory pixel types shared by the detection
// and deblending code. It never imports deblender, scene, or any app
// package; keep it leaf-only.
package image

// Plane is a single-band image indexed [y][x].
type Plane [][]float64

// NewPlane returns an all-zero h×w plane.
func NewPlane(h, w int) Plane {
	p := make(Plane, h)
	for y := range p {
		p[y] = make([]float64, w)
	}
	return p
}

func (p Plane) Height() int { return len(p) }

func (p Plane) Width() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Masked returns a copy of p with pixels outside m zeroed and the
// remaining pixels clipped at zero (source cutouts are non-negative).
func (p Plane) Masked(m Mask) Plane {
	out := NewPlane(p.Height(), p.Width())
	for y := range p {
		for x, v := range p[y] {
			if m[y][x] && v > 0 {
				out[y][x] = v
			}
		}
	}
	return out
}

// Mask is a boolean per-pixel footprint indexed [y][x].
type Mask [][]bool

// NewMask returns an all-false h×w mask.
func NewMask(h, w int) Mask {
	m := make(Mask, h)
	for y := range m {
		m[y] = make([]bool, w)
	}
	return m
}

func (m Mask) Height() int { return len(m) }

func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Area counts the set pixels.
func (m Mask) Area() int {
	n := 0
	for y := range m {
		for _, b := range m[y] {
			if b {
				n++
			}
		}
	}
	return n
}

// Cube is a multi-band image, one Plane per band.
type Cube []Plane

// NewCube returns an all-zero cube of the given shape.
func NewCube(bands, h, w int) Cube {
	c := make(Cube, bands)
	for b := range c {
		c[b] = NewPlane(h, w)
	}
	return c
}

func (c Cube) Bands() int { return len(c) }

func (c Cube) Height() int {
	if len(c) == 0 {
		return 0
	}
	return c[0].Height()
}

func (c Cube) Width() int {
	if len(c) == 0 {
		return 0
	}
	return c[0].Width()
}

// Band returns the i-th plane without copying.
func (c Cube) Band(i int) Plane { return c[i] }

// Mean collapses the cube to a single plane by averaging across bands.
func (c Cube) Mean() Plane {
	h, w := c.Height(), c.Width()
	out := NewPlane(h, w)
	if len(c) == 0 {
		return out
	}
	inv := 1.0 / float64(len(c))
	for _, p := range c {
		for y := range p {
			for x, v := range p[y] {
				out[y][x] += v * inv
			}
		}
	}
	return out
}

// Masked applies m to every band. Unlike Plane.Masked it does not clip:
// cutouts from a raw cube keep their noise sign.
func (c Cube) Masked(m Mask) Cube {
	out := make(Cube, len(c))
	for b, p := range c {
		op := NewPlane(p.Height(), p.Width())
		for y := range p {
			for x, v := range p[y] {
				if m[y][x] {
					op[y][x] = v
				}
			}
		}
		out[b] = op
	}
	return out
}
