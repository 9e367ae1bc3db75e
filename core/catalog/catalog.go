// Package catalog holds the detection table produced by every strategy.
package catalog

// Table is an ordered table of detected sources. The column set is
// fixed: sky position in arcseconds and the peak pixel position. All
// four columns always have the same length.
type Table struct {
	RA  []float64 // arcsec
	Dec []float64 // arcsec
	X   []float64 // pixel, x_peak
	Y   []float64 // pixel, y_peak
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.RA) }

// Append adds one detection row.
func (t *Table) Append(ra, dec, x, y float64) {
	t.RA = append(t.RA, ra)
	t.Dec = append(t.Dec, dec)
	t.X = append(t.X, x)
	t.Y = append(t.Y, y)
}

// Slice returns rows [from, to) as a new table sharing backing arrays.
func (t *Table) Slice(from, to int) Table {
	return Table{
		RA:  t.RA[from:to],
		Dec: t.Dec[from:to],
		X:   t.X[from:to],
		Y:   t.Y[from:to],
	}
}
