package riverbc

import (
	"sort"
	"strconv"

	"github.com/paulmach/orb"
)

// NodeDirection gives the digitized flow direction of a river segment
// relative to its node ordering.
type NodeDirection int

const (
	DirUnknown NodeDirection = iota
	DirTo                    // flow toward the segment's last node
	DirFrom                  // flow toward the segment's first node
)

func ParseNodeDirection(s string) NodeDirection {
	switch s {
	case "to":
		return DirTo
	case "from":
		return DirFrom
	}
	return DirUnknown
}

func (d NodeDirection) String() string {
	switch d {
	case DirTo:
		return "to"
	case DirFrom:
		return "from"
	}
	return "unknown"
}

// NodeIntersect records which of a segment's end nodes fall inside the
// area of interest, as attributed by the upstream network survey.
type NodeIntersect int

const (
	IntersectUnknown NodeIntersect = iota
	IntersectFirst
	IntersectLast
	IntersectBoth
	IntersectNone
)

func ParseNodeIntersect(s string) NodeIntersect {
	switch s {
	case "first_node":
		return IntersectFirst
	case "last_node":
		return IntersectLast
	case "both_nodes":
		return IntersectBoth
	case "none":
		return IntersectNone
	}
	return IntersectUnknown
}

func (n NodeIntersect) String() string {
	switch n {
	case IntersectFirst:
		return "first_node"
	case IntersectLast:
		return "last_node"
	case IntersectBoth:
		return "both_nodes"
	case IntersectNone:
		return "none"
	}
	return "unknown"
}

// FlowEstimate is a flow statistic and its standard error (m³/s).
type FlowEstimate struct{ Flow, StdErr float64 }

// FlowStats carries a segment's catchment-area-scaled flood statistics:
// the mean annual flood and flows for the surveyed return periods.
type FlowStats struct {
	MAF FlowEstimate
	RP  map[int]FlowEstimate // keyed by return period (years)
}

// ReturnPeriods lists the available return periods, ascending.
func (fs FlowStats) ReturnPeriods() []int {
	rps := make([]int, 0, len(fs.RP))
	for rp := range fs.RP {
		rps = append(rps, rp)
	}
	sort.Ints(rps)
	return rps
}

func (fs FlowStats) validScenarios() []string {
	v := make([]string, 0, len(fs.RP)+1)
	v = append(v, "maf")
	for _, rp := range fs.ReturnPeriods() {
		v = append(v, strconv.Itoa(rp))
	}
	return v
}

// RiverSegment is one polyline of the river network, immutable once
// loaded for a run.
type RiverSegment struct {
	ObjectID  int
	Direction NodeDirection
	Intersect NodeIntersect
	AreaKm2   float64
	Stats     FlowStats
	Geom      orb.LineString
}

// WaterwayType distinguishes the two surveyed waterway classes.
type WaterwayType int

const (
	WaterwayRiver WaterwayType = iota
	WaterwayStream
)

// WaterwayFeature is one polyline of the independently surveyed waterway
// dataset; its boundary crossings are computed the same way as river
// segments', then exploded into individual points.
type WaterwayFeature struct {
	ID   int
	Type WaterwayType
	Geom orb.LineString
}
