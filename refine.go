package riverbc

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
)

// window of cells examined around the nearest cell
const refineWindow = 5

// maskRing buffers the crossed outline edge by one cell width
// perpendicular to the line, forming the clip mask for the refiner.
func maskRing(b orb.Bound, edge int, cw float64) orb.Ring {
	q0, q1 := EdgeSegment(b, edge)
	dx, dy := q1[0]-q0[0], q1[1]-q0[1]
	l := math.Hypot(dx, dy)
	nx, ny := -dy/l*cw, dx/l*cw
	return orb.Ring{
		{q0[0] + nx, q0[1] + ny},
		{q1[0] + nx, q1[1] + ny},
		{q1[0] - nx, q1[1] - ny},
		{q0[0] - nx, q0[1] - ny},
		{q0[0] + nx, q0[1] + ny},
	}
}

// Refine resolves an aligned entry point to the minimum-elevation cell
// of a 5×5 raster window about the cell nearest the point. Elevation
// ties break to the cell closest to the centroid of all examined cells.
// The winning cell is the authoritative coordinate handed to the solver.
func Refine(ctx context.Context, aep AlignedEntryPoint, b orb.Bound, cw float64, ras RasterSource) (RefinedInputPoint, error) {
	clip, err := ras.Clip(ctx, maskRing(b, aep.Edge, cw))
	if err != nil {
		return RefinedInputPoint{}, fmt.Errorf("refine segment %d: %w", aep.ObjectID, err)
	}
	near, ok := clip.Nearest(aep.WaterwayPt)
	if !ok {
		return RefinedInputPoint{}, fmt.Errorf("refine segment %d: no dem cells within boundary clip mask", aep.ObjectID)
	}
	win := clip.Window(near, refineWindow)

	zz := make([]float64, len(win))
	cx, cy := 0., 0.
	for i, c := range win {
		zz[i] = c.Z
		cx += c.Ctr.X
		cy += c.Ctr.Y
	}
	cx /= float64(len(win))
	cy /= float64(len(win))

	zmin := zz[floats.MinIdx(zz)]
	best, bestd := win[0], math.Inf(1)
	for i, c := range win {
		if zz[i] != zmin {
			continue
		}
		d := math.Hypot(c.Ctr.X-cx, c.Ctr.Y-cy)
		if d < bestd || (d == bestd && c.ID < best.ID) {
			best, bestd = c, d
		}
	}

	return RefinedInputPoint{
		ObjectID:   aep.ObjectID,
		CellID:     best.ID,
		Cell:       best.Ctr,
		Elev:       best.Z,
		Resolution: clip.Cw,
	}, nil
}
