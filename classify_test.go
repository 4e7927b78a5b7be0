package riverbc

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestClassifySingleDeterminism(t *testing.T) {
	cases := []struct {
		dir  NodeDirection
		ni   NodeIntersect
		cat  Category
		kept bool
	}{
		{DirTo, IntersectLast, Inflow, true},
		{DirFrom, IntersectFirst, Inflow, true},
		{DirTo, IntersectFirst, Outflow, true},
		{DirFrom, IntersectLast, Outflow, true},
		{DirTo, IntersectBoth, 0, false},
		{DirTo, IntersectNone, 0, false},
		{DirFrom, IntersectBoth, 0, false},
		{DirFrom, IntersectNone, 0, false},
	}
	for _, c := range cases {
		cat, ok := classifySingle(c.dir, c.ni)
		require.Equal(t, c.kept, ok, "%s/%s", c.dir, c.ni)
		if ok {
			require.Equal(t, c.cat, cat, "%s/%s", c.dir, c.ni)
		}
	}
}

func TestStartIndexTable(t *testing.T) {
	cases := []struct {
		dir   NodeDirection
		ni    NodeIntersect
		start int
	}{
		{DirTo, IntersectBoth, 1},
		{DirTo, IntersectFirst, 1},
		{DirFrom, IntersectNone, 1},
		{DirFrom, IntersectLast, 1},
		{DirFrom, IntersectBoth, 0},
		{DirFrom, IntersectFirst, 0},
		{DirTo, IntersectNone, 0},
		{DirTo, IntersectLast, 0},
	}
	for _, c := range cases {
		s, ok := startIndex(c.dir, c.ni)
		require.True(t, ok, "%s/%s", c.dir, c.ni)
		require.Equal(t, c.start, s, "%s/%s", c.dir, c.ni)
	}
	_, ok := startIndex(DirUnknown, IntersectBoth)
	require.False(t, ok)
	_, ok = startIndex(DirTo, IntersectUnknown)
	require.False(t, ok)
}

func TestClassifyParity(t *testing.T) {
	for n := 2; n <= 7; n++ {
		cps := make([]CrossingPoint, n)
		for start := 0; start <= 1; start++ {
			cats := classifyAll(cps, start)
			nin := 0
			for i, c := range cats {
				if c == Inflow {
					nin++
				}
				if i > 0 {
					require.NotEqual(t, cats[i-1], c, "categories must alternate")
				}
			}
			want := n / 2
			if start == 0 && n%2 == 1 {
				want++
			}
			require.Equal(t, want, nin, "n=%d start=%d", n, start)
		}
	}
}

func TestClassifyKeepsLastInflow(t *testing.T) {
	// crosses twice; to/both_nodes starts inflow at index 1, so the
	// effective inflow is the second (most-downstream) crossing
	seg := &RiverSegment{
		ObjectID:  7,
		Direction: DirTo,
		Intersect: IntersectBoth,
		Geom:      orb.LineString{{-10, 20}, {110, 20}},
	}
	out, err := Classify([]*RiverSegment{seg}, testBound)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 7, out[0].ObjectID)
	require.Equal(t, Inflow, out[0].Cat)
	require.Equal(t, orb.Point{100, 20}, out[0].Pt)
	require.Equal(t, EdgeEast, out[0].Edge)
}

func TestClassifySingleInflowKept(t *testing.T) {
	seg := &RiverSegment{
		ObjectID:  3,
		Direction: DirTo,
		Intersect: IntersectLast,
		Geom:      orb.LineString{{-10, 50}, {50, 50}},
	}
	out, err := Classify([]*RiverSegment{seg}, testBound)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, orb.Point{0, 50}, out[0].Pt)
}

func TestClassifySingleDiscards(t *testing.T) {
	// single crossing with both_nodes is neither inflow nor outflow of
	// interest, but it still counts as river data
	seg := &RiverSegment{
		ObjectID:  4,
		Direction: DirTo,
		Intersect: IntersectBoth,
		Geom:      orb.LineString{{-10, 50}, {50, 50}},
	}
	out, err := Classify([]*RiverSegment{seg}, testBound)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestClassifyUnresolvable(t *testing.T) {
	seg := &RiverSegment{
		ObjectID:  9,
		Direction: DirUnknown,
		Intersect: IntersectBoth,
		Geom:      orb.LineString{{-10, 20}, {110, 20}},
	}
	_, err := Classify([]*RiverSegment{seg}, testBound)
	var uce *UnresolvableClassificationError
	require.ErrorAs(t, err, &uce)
	require.Equal(t, 9, uce.ObjectID)
}

func TestClassifyNoRiverData(t *testing.T) {
	segs := []*RiverSegment{
		{ObjectID: 1, Geom: orb.LineString{{10, 10}, {20, 20}}},
		{ObjectID: 2, Geom: orb.LineString{{-50, -50}, {-10, -10}}},
	}
	_, err := Classify(segs, testBound)
	var nrd *NoRiverDataError
	require.ErrorAs(t, err, &nrd)
	require.Equal(t, 2, nrd.Segments)
}
