package riverbc

import (
	"github.com/maseology/mmaths"
	"github.com/paulmach/orb"
)

// Category tags a boundary crossing as entering or leaving the domain.
type Category int

const (
	Inflow Category = iota
	Outflow
)

func (c Category) String() string {
	if c == Inflow {
		return "inflow"
	}
	return "outflow"
}

// CrossingPoint is one intersection of a polyline with the domain
// outline. Chainage is the cumulative distance along the line from its
// first vertex, which orders multi-crossing sequences; Edge identifies
// the outline side crossed (see EdgeSegment).
type CrossingPoint struct {
	Pt       orb.Point
	Chainage float64
	Edge     int
}

// ClassifiedPoint is a CrossingPoint resolved to inflow or outflow,
// carrying its parent segment's object id.
type ClassifiedPoint struct {
	ObjectID int
	Cat      Category
	Pt       orb.Point
	Chainage float64
	Edge     int
}

// WaterwayCrossing is one exploded waterway/outline intersection point.
type WaterwayCrossing struct {
	FeatureID int
	Pt        orb.Point
	Edge      int
}

// AlignedEntryPoint pairs a river segment's effective inflow crossing
// with the waterway survey point it snapped to. Each waterway point is
// consumed by at most one segment.
type AlignedEntryPoint struct {
	ObjectID   int
	RiverPt    orb.Point
	WaterwayPt orb.Point
	WaterwayID int
	Dist       float64
	Edge       int
}

// RefinedInputPoint is the solver-facing river entry cell: an aligned
// entry point resolved to the locally lowest DEM cell.
type RefinedInputPoint struct {
	PointNo    int // river_input_point_no, 1-based
	ObjectID   int
	CellID     int
	Cell       mmaths.Point
	Elev       float64
	Resolution float64
	AreaKm2    float64
}

// HydrographSample is one (time, flow) pair of an input point's forcing
// series. Samples for a point are emitted in ascending OffsetMins order.
type HydrographSample struct {
	PointNo    int
	OffsetMins float64
	Flow       float64
	AreaKm2    float64
	Resolution float64
}
