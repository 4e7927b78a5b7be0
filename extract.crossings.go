package riverbc

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// domain outline edges, counter-clockwise from the south side
const (
	EdgeSouth = iota
	EdgeEast
	EdgeNorth
	EdgeWest
)

// EdgeSegment returns the two corners of the outline side e of b.
func EdgeSegment(b orb.Bound, e int) (orb.Point, orb.Point) {
	sw := b.Min
	ne := b.Max
	se := orb.Point{ne[0], sw[1]}
	nw := orb.Point{sw[0], ne[1]}
	switch e {
	case EdgeSouth:
		return sw, se
	case EdgeEast:
		return se, ne
	case EdgeNorth:
		return ne, nw
	default:
		return nw, sw
	}
}

// Crossings intersects a polyline with the rectangular domain outline,
// returning the crossing points ordered by chainage along the line. A
// line that never crosses returns nil; that is expected, not an error.
func Crossings(ln orb.LineString, b orb.Bound) []CrossingPoint {
	var out []CrossingPoint
	var chain float64
	for i := 0; i < len(ln)-1; i++ {
		p0, p1 := ln[i], ln[i+1]
		seglen := math.Hypot(p1[0]-p0[0], p1[1]-p0[1])
		for e := EdgeSouth; e <= EdgeWest; e++ {
			q0, q1 := EdgeSegment(b, e)
			if pt, t, ok := segIntersect(p0, p1, q0, q1); ok {
				out = append(out, CrossingPoint{Pt: pt, Chainage: chain + t*seglen, Edge: e})
			}
		}
		chain += seglen
	}
	if len(out) < 2 {
		return out
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chainage < out[j].Chainage })

	// a vertex on the outline, or a corner touch, yields coincident hits
	ded := out[:1]
	for _, c := range out[1:] {
		if c.Chainage-ded[len(ded)-1].Chainage > crossEps {
			ded = append(ded, c)
		}
	}
	return ded
}

const crossEps = 1e-9

// segIntersect solves the proper intersection of segments p0→p1 and
// q0→q1, returning the point and the parameter t ∈ [0,1] along p0→p1.
// Collinear overlaps are not crossings.
func segIntersect(p0, p1, q0, q1 orb.Point) (orb.Point, float64, bool) {
	rx, ry := p1[0]-p0[0], p1[1]-p0[1]
	sx, sy := q1[0]-q0[0], q1[1]-q0[1]
	den := rx*sy - ry*sx
	if den == 0. {
		return orb.Point{}, 0, false
	}
	qpx, qpy := q0[0]-p0[0], q0[1]-p0[1]
	t := (qpx*sy - qpy*sx) / den
	u := (qpx*ry - qpy*rx) / den
	if t < 0. || t > 1. || u < 0. || u > 1. {
		return orb.Point{}, 0, false
	}
	return orb.Point{p0[0] + t*rx, p0[1] + t*ry}, t, true
}

// ExplodeWaterwayCrossings computes each waterway feature's outline
// crossings and flattens them to individual candidate points for the
// alignment matcher.
func ExplodeWaterwayCrossings(wws []*WaterwayFeature, b orb.Bound) []WaterwayCrossing {
	var out []WaterwayCrossing
	for _, w := range wws {
		for _, c := range Crossings(w.Geom, b) {
			out = append(out, WaterwayCrossing{FeatureID: w.ID, Pt: c.Pt, Edge: c.Edge})
		}
	}
	return out
}
