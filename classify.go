package riverbc

import "github.com/paulmach/orb"

// classifySingle resolves a single-crossing segment. Only four
// direction/intersect combinations are of interest; all others are
// discarded (ok=false).
func classifySingle(dir NodeDirection, ni NodeIntersect) (Category, bool) {
	switch {
	case dir == DirTo && ni == IntersectLast:
		return Inflow, true
	case dir == DirFrom && ni == IntersectFirst:
		return Inflow, true
	case dir == DirTo && ni == IntersectFirst:
		return Outflow, true
	case dir == DirFrom && ni == IntersectLast:
		return Outflow, true
	}
	return 0, false
}

// startIndex gives the 0-based parity index of the first inflow point in
// a multi-crossing sequence ordered by chainage. Combinations absent
// from the table cannot be classified.
func startIndex(dir NodeDirection, ni NodeIntersect) (int, bool) {
	switch dir {
	case DirTo:
		switch ni {
		case IntersectBoth, IntersectFirst:
			return 1, true
		case IntersectNone, IntersectLast:
			return 0, true
		}
	case DirFrom:
		switch ni {
		case IntersectNone, IntersectLast:
			return 1, true
		case IntersectBoth, IntersectFirst:
			return 0, true
		}
	}
	return 0, false
}

// Classify resolves each river segment's boundary crossings to a single
// effective inflow point: the most-downstream inflow crossing before
// the boundary. Segments that never cross, or whose single crossing is
// not of interest, are dropped. A run in which no segment crosses at
// all raises NoRiverDataError; an attribute combination outside the
// classification table raises UnresolvableClassificationError.
func Classify(segs []*RiverSegment, b orb.Bound) ([]ClassifiedPoint, error) {
	var out []ClassifiedPoint
	ncross := 0
	for _, s := range segs {
		cps := Crossings(s.Geom, b)
		if len(cps) == 0 {
			continue
		}
		ncross++

		if len(cps) == 1 {
			cat, ok := classifySingle(s.Direction, s.Intersect)
			if !ok {
				continue
			}
			if cat != Inflow {
				continue
			}
			out = append(out, ClassifiedPoint{
				ObjectID: s.ObjectID,
				Cat:      Inflow,
				Pt:       cps[0].Pt,
				Chainage: cps[0].Chainage,
				Edge:     cps[0].Edge,
			})
			continue
		}

		start, ok := startIndex(s.Direction, s.Intersect)
		if !ok {
			return nil, &UnresolvableClassificationError{
				ObjectID:  s.ObjectID,
				Direction: s.Direction,
				Intersect: s.Intersect,
			}
		}

		// categories alternate along the ordered sequence; keep the
		// last inflow crossing
		last := -1
		for i := range cps {
			if i%2 == start%2 {
				last = i
			}
		}
		if last < 0 {
			continue
		}
		out = append(out, ClassifiedPoint{
			ObjectID: s.ObjectID,
			Cat:      Inflow,
			Pt:       cps[last].Pt,
			Chainage: cps[last].Chainage,
			Edge:     cps[last].Edge,
		})
	}
	if ncross == 0 {
		return nil, &NoRiverDataError{Segments: len(segs)}
	}
	return out, nil
}

// classifyAll expands a multi-crossing sequence to its full alternating
// category list; used to verify parity behaviour.
func classifyAll(cps []CrossingPoint, start int) []Category {
	cats := make([]Category, len(cps))
	for i := range cps {
		if i%2 == start%2 {
			cats[i] = Inflow
		} else {
			cats[i] = Outflow
		}
	}
	return cats
}
