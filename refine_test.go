package riverbc

import (
	"context"
	"testing"

	"github.com/maseology/mmaths"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

// fakeRaster serves a prebuilt clip and records the requested mask.
type fakeRaster struct {
	b    orb.Bound
	cw   float64
	clip *DEMClip
	mask orb.Ring
}

func (f *fakeRaster) Extent(ctx context.Context) (orb.Bound, float64, error) {
	return f.b, f.cw, nil
}

func (f *fakeRaster) Clip(ctx context.Context, mask orb.Ring) (*DEMClip, error) {
	f.mask = mask
	return f.clip, nil
}

// column of cells down the east edge of a (0,0)-(1000,1000) domain at
// 10 m resolution: col 99, centroid x=995, rows 0..99 from the north
func eastEdgeCells(zf func(row int) float64) []DEMCell {
	cells := make([]DEMCell, 0, 100)
	for r := 0; r < 100; r++ {
		y := 995. - float64(r)*10.
		cells = append(cells, DEMCell{
			ID:  r*100 + 99,
			Row: r, Col: 99,
			Ctr: mmaths.Point{X: 995., Y: y},
			Z:   zf(r),
		})
	}
	return cells
}

func TestDEMClipNearestAndWindow(t *testing.T) {
	clip := NewDEMClip(10., eastEdgeCells(func(int) float64 { return 10. }))
	near, ok := clip.Nearest(orb.Point{1000, 322})
	require.True(t, ok)
	require.InDelta(t, 325., near.Ctr.Y, 1e-9)

	win := clip.Window(near, 5)
	require.Len(t, win, 5) // single column, rows clamped to what exists
	for _, c := range win {
		require.LessOrEqual(t, absInt(c.Row-near.Row), 2)
		require.LessOrEqual(t, absInt(c.Col-near.Col), 2)
	}
}

func TestDEMClipNearestTiesToLowerCellID(t *testing.T) {
	clip := NewDEMClip(10., eastEdgeCells(func(int) float64 { return 10. }))
	// y=320 sits exactly between the row-67 (y=325) and row-68 (y=315)
	// centroids; the lower cell id must win every run
	for i := 0; i < 20; i++ {
		near, ok := clip.Nearest(orb.Point{1000, 320})
		require.True(t, ok)
		require.Equal(t, 67*100+99, near.ID)
	}
}

func TestDEMClipWindowClampedAtEdge(t *testing.T) {
	clip := NewDEMClip(10., eastEdgeCells(func(int) float64 { return 10. }))
	near, _ := clip.Nearest(orb.Point{1000, 995}) // row 0
	win := clip.Window(near, 5)
	require.Len(t, win, 3) // rows 0..2 only
}

func TestRefinePicksMinimumElevation(t *testing.T) {
	// row 34 sits 2.1 m below the rest, inside the 5×5 window of the
	// nearest cell (row 32)
	fr := &fakeRaster{
		b:  orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1000, 1000}},
		cw: 10.,
		clip: NewDEMClip(10., eastEdgeCells(func(r int) float64 {
			if r == 34 {
				return 7.9
			}
			return 10.
		})),
	}
	aep := AlignedEntryPoint{ObjectID: 1, WaterwayPt: orb.Point{1000, 672}, Edge: EdgeEast}
	rip, err := Refine(context.Background(), aep, fr.b, fr.cw, fr)
	require.NoError(t, err)
	require.Equal(t, 7.9, rip.Elev)
	require.InDelta(t, 655., rip.Cell.Y, 1e-9) // row 34
	require.Equal(t, 10., rip.Resolution)

	// locality: winner within 2 cells of the nearest cell (row 32)
	near, _ := fr.clip.Nearest(aep.WaterwayPt)
	require.LessOrEqual(t, absInt(34-near.Row), 2)

	// the clip mask buffers the east edge by one cell width
	require.Len(t, fr.mask, 5)
	mb := fr.mask.Bound()
	require.InDelta(t, 990., mb.Min[0], 1e-9)
	require.InDelta(t, 1010., mb.Max[0], 1e-9)
}

func TestRefineNoLowerCellInWindow(t *testing.T) {
	// uniform elevations: every window cell ties, so the tie-break
	// selects the cell closest to the window centroid
	fr := &fakeRaster{
		b:    orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1000, 1000}},
		cw:   10.,
		clip: NewDEMClip(10., eastEdgeCells(func(int) float64 { return 4. })),
	}
	aep := AlignedEntryPoint{ObjectID: 2, WaterwayPt: orb.Point{1000, 502}, Edge: EdgeEast}
	rip, err := Refine(context.Background(), aep, fr.b, fr.cw, fr)
	require.NoError(t, err)
	require.Equal(t, 4., rip.Elev)
	// window rows are symmetric about the nearest cell, so the nearest
	// cell itself is closest to the centroid
	near, _ := fr.clip.Nearest(aep.WaterwayPt)
	require.Equal(t, near.ID, rip.CellID)
}

func TestRefineEmptyClip(t *testing.T) {
	fr := &fakeRaster{
		b:    orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1000, 1000}},
		cw:   10.,
		clip: NewDEMClip(10., nil),
	}
	aep := AlignedEntryPoint{ObjectID: 3, WaterwayPt: orb.Point{1000, 500}, Edge: EdgeEast}
	_, err := Refine(context.Background(), aep, fr.b, fr.cw, fr)
	require.Error(t, err)
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
