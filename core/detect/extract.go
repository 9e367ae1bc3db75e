package detect

import (
	"gonum.org/v1/gonum/stat"

	"deblend-core/image"
)

// Background is a global background estimate for one plane.
type Background struct {
	Mean float64
	RMS  float64
}

// EstimateBackground sigma-clips the pixel distribution to reject
// source flux, then reports the mean and rms of what is left.
func EstimateBackground(p image.Plane) Background {
	vals := make([]float64, 0, p.Height()*p.Width())
	for y := range p {
		vals = append(vals, p[y]...)
	}
	mean, std := stat.MeanStdDev(vals, nil)
	const clip = 3.0
	for iter := 0; iter < 3; iter++ {
		kept := vals[:0]
		for _, v := range vals {
			if v >= mean-clip*std && v <= mean+clip*std {
				kept = append(kept, v)
			}
		}
		if len(kept) < 2 || len(kept) == len(vals) {
			break
		}
		vals = kept
		mean, std = stat.MeanStdDev(vals, nil)
	}
	return Background{Mean: mean, RMS: std}
}

// Object is one extracted source.
type Object struct {
	Label int     // label in the segmentation map, 1-based
	X, Y  float64 // flux-weighted centroid, pixels
	Peak  float64 // brightest background-subtracted pixel
	Area  int
}

// Labels is a segmentation map: 0 is background, labels 1..n point into
// the object list returned alongside it.
type Labels [][]int

// MaskOf returns the boolean footprint of one label.
func (l Labels) MaskOf(label int) image.Mask {
	m := image.NewMask(len(l), len(l[0]))
	for y := range l {
		for x, v := range l[y] {
			if v == label {
				m[y][x] = true
			}
		}
	}
	return m
}

// Extract segments p into connected sources. The detection threshold is
// thresh × background rms above the background mean; components smaller
// than minArea pixels are dropped. Objects are labelled in scan order
// of their first pixel, which fixes the catalogue order.
func Extract(p image.Plane, thresh float64, minArea int) ([]Object, Labels, Background) {
	h, w := p.Height(), p.Width()
	bkg := EstimateBackground(p)
	cut := bkg.Mean + thresh*bkg.RMS

	labels := make(Labels, h)
	for y := range labels {
		labels[y] = make([]int, w)
	}

	var objs []Object
	next := 1
	var stack [][2]int
	for y0 := 0; y0 < h; y0++ {
		for x0 := 0; x0 < w; x0++ {
			if labels[y0][x0] != 0 || p[y0][x0] <= cut {
				continue
			}
			// Flood-fill one 8-connected component.
			stack = stack[:0]
			stack = append(stack, [2]int{x0, y0})
			labels[y0][x0] = next
			var pixels [][2]int
			for len(stack) > 0 {
				px := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels = append(pixels, px)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						xx, yy := px[0]+dx, px[1]+dy
						if xx < 0 || xx >= w || yy < 0 || yy >= h {
							continue
						}
						if labels[yy][xx] == 0 && p[yy][xx] > cut {
							labels[yy][xx] = next
							stack = append(stack, [2]int{xx, yy})
						}
					}
				}
			}
			if len(pixels) < minArea {
				for _, px := range pixels {
					labels[px[1]][px[0]] = 0
				}
				continue
			}
			objs = append(objs, summarize(p, bkg, pixels, next))
			next++
		}
	}
	return objs, labels, bkg
}

func summarize(p image.Plane, bkg Background, pixels [][2]int, label int) Object {
	var sum, sx, sy, peak float64
	for _, px := range pixels {
		f := p[px[1]][px[0]] - bkg.Mean
		if f < 0 {
			f = 0
		}
		sum += f
		sx += f * float64(px[0])
		sy += f * float64(px[1])
		if f > peak {
			peak = f
		}
	}
	o := Object{Label: label, Peak: peak, Area: len(pixels)}
	if sum > 0 {
		o.X = sx / sum
		o.Y = sy / sum
	} else {
		o.X = float64(pixels[0][0])
		o.Y = float64(pixels[0][1])
	}
	return o
}
