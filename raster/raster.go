// Package raster adapts a gridded elevation model to the pipeline's
// RasterSource interface. The grid definition and hydrologically
// conditioned DEM are read once and served from memory for all clips of
// a catchment request.
package raster

import (
	"context"
	"fmt"
	"math"

	riverbc "github.com/GeospatialResearch/Digital-Twins-sub001"
	"github.com/maseology/goHydro/grid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DEM is a grid-backed RasterSource.
type DEM struct {
	gd     *grid.Definition
	z      map[int]float64 // cell id to elevation
	b      orb.Bound
	cw     float64
	x0, y1 float64 // grid upper-left cell centroid, for row/col indexing
}

// Load reads a grid definition and its float32 elevation raster.
func Load(gdefFP, demFP string) (*DEM, error) {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf("raster.Load: %v", err)
	}
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf("raster.Load: grid definition requires active cells")
	}

	var g grid.Real
	g.NewGD32(demFP, gd)
	nwarn := 0
	for _, cid := range gd.Sactives {
		if z, ok := g.A[cid]; !ok || z == -9999. {
			nwarn++
		}
	}
	if nwarn > 0 {
		fmt.Printf(" raster.Load WARNING: %d active cells with no elevation assigned\n", nwarn)
	}

	cw := gd.CellWidth()
	xn, yn, xx, yx := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, cid := range gd.Sactives {
		p := gd.Coord[cid]
		xn = math.Min(xn, p.X)
		yn = math.Min(yn, p.Y)
		xx = math.Max(xx, p.X)
		yx = math.Max(yx, p.Y)
	}

	return &DEM{
		gd: gd,
		z:  g.A,
		b: orb.Bound{
			Min: orb.Point{xn - cw/2., yn - cw/2.},
			Max: orb.Point{xx + cw/2., yx + cw/2.},
		},
		cw: cw,
		x0: xn,
		y1: yx,
	}, nil
}

// Extent returns the modelled domain rectangle and cell resolution.
func (d *DEM) Extent(ctx context.Context) (orb.Bound, float64, error) {
	if err := ctx.Err(); err != nil {
		return orb.Bound{}, 0., err
	}
	return d.b, d.cw, nil
}

// rowcol indexes a cell centroid on the grid, row 0 at the north edge.
func (d *DEM) rowcol(x, y float64) (int, int) {
	return int(math.Round((d.y1 - y) / d.cw)), int(math.Round((x - d.x0) / d.cw))
}

// Clip collects the active cells whose centroids fall within mask.
func (d *DEM) Clip(ctx context.Context, mask orb.Ring) (*riverbc.DEMClip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var cells []riverbc.DEMCell
	for _, cid := range d.gd.Sactives {
		p := d.gd.Coord[cid]
		if !planar.RingContains(mask, orb.Point{p.X, p.Y}) {
			continue
		}
		z, ok := d.z[cid]
		if !ok || z == -9999. {
			continue
		}
		r, c := d.rowcol(p.X, p.Y)
		cells = append(cells, riverbc.DEMCell{ID: cid, Row: r, Col: c, Ctr: p, Z: z})
	}
	return riverbc.NewDEMClip(d.cw, cells), nil
}
