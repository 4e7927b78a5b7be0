package riverbc

import (
	"math"

	"github.com/maseology/mmaths"
	"github.com/paulmach/orb"
)

// DEMCell is one elevation-raster cell of a clipped neighborhood. Row
// and Col index the parent grid; Ctr is the cell centroid.
type DEMCell struct {
	ID, Row, Col int
	Ctr          mmaths.Point
	Z            float64
}

// DEMClip is an in-memory window of the elevation raster, keyed by
// grid row/col, as returned by a RasterSource clip.
type DEMClip struct {
	Cw    float64 // cell width (raster resolution)
	cells map[[2]int]DEMCell
}

func NewDEMClip(cw float64, cells []DEMCell) *DEMClip {
	m := make(map[[2]int]DEMCell, len(cells))
	for _, c := range cells {
		m[[2]int{c.Row, c.Col}] = c
	}
	return &DEMClip{Cw: cw, cells: m}
}

func (d *DEMClip) Len() int { return len(d.cells) }

// Nearest returns the clipped cell whose centroid lies closest to p.
// Distance ties resolve to the lower cell id so runs are reproducible.
func (d *DEMClip) Nearest(p orb.Point) (DEMCell, bool) {
	if len(d.cells) == 0 {
		return DEMCell{}, false
	}
	var best DEMCell
	bestd := math.Inf(1)
	for _, c := range d.cells {
		dx, dy := c.Ctr.X-p[0], c.Ctr.Y-p[1]
		dd := dx*dx + dy*dy
		if dd < bestd || (dd == bestd && c.ID < best.ID) {
			best, bestd = c, dd
		}
	}
	return best, true
}

// Window collects the n×n block of clipped cells centered on c. Window
// positions beyond the raster edge or outside the clip mask are simply
// absent from the result.
func (d *DEMClip) Window(c DEMCell, n int) []DEMCell {
	h := n / 2
	out := make([]DEMCell, 0, n*n)
	for r := c.Row - h; r <= c.Row+h; r++ {
		for cc := c.Col - h; cc <= c.Col+h; cc++ {
			if cell, ok := d.cells[[2]int{r, cc}]; ok {
				out = append(out, cell)
			}
		}
	}
	return out
}
