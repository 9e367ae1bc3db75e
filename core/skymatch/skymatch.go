// Package skymatch deduplicates detections of the same physical source
// observed independently in several bands. Coordinates are compared by
// true great-circle separation: each position is embedded as a 3-D unit
// vector and nearest neighbours are found with a k-d tree, so
// declination scaling and right-ascension wraparound are handled
// without special cases.
package skymatch

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Coords is a set of sky positions in arcseconds.
type Coords struct {
	RA  []float64
	Dec []float64
}

func (c Coords) Len() int { return len(c.RA) }

// Append adds one position.
func (c *Coords) Append(ra, dec float64) {
	c.RA = append(c.RA, ra)
	c.Dec = append(c.Dec, dec)
}

const arcsecToRad = math.Pi / (180 * 3600)

func unitVector(raArcsec, decArcsec float64) kdtree.Point {
	ra := raArcsec * arcsecToRad
	dec := decArcsec * arcsecToRad
	cd := math.Cos(dec)
	return kdtree.Point{cd * math.Cos(ra), cd * math.Sin(ra), math.Sin(dec)}
}

// chordToArcsec converts a squared chord length between two unit
// vectors into the angular separation in arcseconds.
func chordToArcsec(chord2 float64) float64 {
	half := math.Sqrt(chord2) / 2
	if half > 1 {
		half = 1
	}
	return 2 * math.Asin(half) / arcsecToRad
}

// NearestDistances returns, for every point in from, the angular
// distance in arcseconds to its nearest neighbour in to. Either set
// being empty yields nil.
func NearestDistances(from, to Coords) []float64 {
	if from.Len() == 0 || to.Len() == 0 {
		return nil
	}
	pts := make(kdtree.Points, to.Len())
	for i := range to.RA {
		pts[i] = unitVector(to.RA[i], to.Dec[i])
	}
	tree := kdtree.New(pts, false)

	out := make([]float64, from.Len())
	for i := range from.RA {
		_, d2 := tree.Nearest(unitVector(from.RA[i], from.Dec[i]))
		out[i] = chordToArcsec(d2)
	}
	return out
}

// Survivors reports which candidates are far enough from every point in
// the running set to count as new sources. A candidate survives iff its
// nearest-neighbour distance is strictly greater than thresholdArcsec;
// a separation exactly equal to the threshold is a duplicate. If either
// set is empty all candidates survive.
//
// Candidates are compared against the running set as it was on entry,
// not against each other; callers grow the running set band by band,
// which makes the merge greedy and band-order dependent. That order
// dependence is part of the contract.
func Survivors(running, candidates Coords, thresholdArcsec float64) []bool {
	keep := make([]bool, candidates.Len())
	dists := NearestDistances(candidates, running)
	if dists == nil {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	for i, d := range dists {
		keep[i] = d > thresholdArcsec
	}
	return keep
}
