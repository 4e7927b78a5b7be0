package riverbc

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

var testBound = orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}

func TestCrossingsNone(t *testing.T) {
	ln := orb.LineString{{-50, -50}, {-10, -10}}
	require.Empty(t, Crossings(ln, testBound))
}

func TestCrossingsSingle(t *testing.T) {
	ln := orb.LineString{{-10, 50}, {50, 50}}
	cps := Crossings(ln, testBound)
	require.Len(t, cps, 1)
	require.Equal(t, orb.Point{0, 50}, cps[0].Pt)
	require.Equal(t, EdgeWest, cps[0].Edge)
	require.InDelta(t, 10., cps[0].Chainage, 1e-9)
}

func TestCrossingsThroughOrdered(t *testing.T) {
	ln := orb.LineString{{-10, 20}, {110, 20}}
	cps := Crossings(ln, testBound)
	require.Len(t, cps, 2)
	require.Equal(t, orb.Point{0, 20}, cps[0].Pt)
	require.Equal(t, orb.Point{100, 20}, cps[1].Pt)
	require.Less(t, cps[0].Chainage, cps[1].Chainage)
	require.Equal(t, EdgeWest, cps[0].Edge)
	require.Equal(t, EdgeEast, cps[1].Edge)
}

func TestCrossingsMultiVertex(t *testing.T) {
	// enters west, exits south, re-enters south
	ln := orb.LineString{{-10, 30}, {30, 30}, {30, -20}, {60, -20}, {60, 40}}
	cps := Crossings(ln, testBound)
	require.Len(t, cps, 3)
	for i := 1; i < len(cps); i++ {
		require.Less(t, cps[i-1].Chainage, cps[i].Chainage)
	}
	require.Equal(t, orb.Point{0, 30}, cps[0].Pt)
	require.Equal(t, orb.Point{30, 0}, cps[1].Pt)
	require.Equal(t, orb.Point{60, 0}, cps[2].Pt)
}

func TestExplodeWaterwayCrossings(t *testing.T) {
	wws := []*WaterwayFeature{
		{ID: 1, Geom: orb.LineString{{-10, 20}, {110, 20}}}, // two crossings
		{ID: 2, Geom: orb.LineString{{20, 20}, {40, 40}}},   // none
		{ID: 3, Geom: orb.LineString{{50, 50}, {50, 120}}},  // one
	}
	pts := ExplodeWaterwayCrossings(wws, testBound)
	require.Len(t, pts, 3)
	ids := map[int]int{}
	for _, p := range pts {
		ids[p.FeatureID]++
	}
	require.Equal(t, map[int]int{1: 2, 3: 1}, ids)
}
