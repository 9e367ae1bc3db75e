// Package detect finds sources in single-band images: local-maxima peak
// finding and threshold-based extraction with segmentation.
package detect

import (
	"sort"

	"deblend-core/image"
)

// Peak is one local intensity maximum.
type Peak struct {
	X, Y  int
	Value float64
}

// PeakLocalMax returns up to maxPeaks local maxima with intensity above
// threshold, each separated from any stronger accepted peak by more
// than minDistance pixels (Chebyshev). Peaks are returned brightest
// first. maxPeaks <= 0 means unlimited.
func PeakLocalMax(p image.Plane, minDistance int, threshold float64, maxPeaks int) []Peak {
	h, w := p.Height(), p.Width()
	if minDistance < 1 {
		minDistance = 1
	}

	var cand []Peak
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := p[y][x]
			if v <= threshold {
				continue
			}
			if isNeighbourhoodMax(p, x, y, minDistance, v) {
				cand = append(cand, Peak{X: x, Y: y, Value: v})
			}
		}
	}

	// Brightest first; scan order breaks ties so output is stable.
	sort.SliceStable(cand, func(i, j int) bool { return cand[i].Value > cand[j].Value })

	var out []Peak
	for _, c := range cand {
		if tooClose(out, c, minDistance) {
			continue
		}
		out = append(out, c)
		if maxPeaks > 0 && len(out) == maxPeaks {
			break
		}
	}
	return out
}

func isNeighbourhoodMax(p image.Plane, x, y, r int, v float64) bool {
	h, w := p.Height(), p.Width()
	for dy := -r; dy <= r; dy++ {
		yy := y + dy
		if yy < 0 || yy >= h {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			xx := x + dx
			if xx < 0 || xx >= w || (dx == 0 && dy == 0) {
				continue
			}
			if p[yy][xx] > v {
				return false
			}
		}
	}
	return true
}

func tooClose(accepted []Peak, c Peak, minDistance int) bool {
	for _, a := range accepted {
		dx := a.X - c.X
		if dx < 0 {
			dx = -dx
		}
		dy := a.Y - c.Y
		if dy < 0 {
			dy = -dy
		}
		d := dx
		if dy > d {
			d = dy
		}
		if d <= minDistance {
			return true
		}
	}
	return false
}
