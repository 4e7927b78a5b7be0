package riverbc

import (
	"sort"

	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

// DefaultAlignThreshold is the snapping distance budget (m) between a
// river-network inflow point and its waterway survey counterpart.
const DefaultAlignThreshold = 300.

type alignCandidate struct {
	is, iw int // indices into the inflow and waterway arrays
	d      float64
}

// Align snaps each inflow point onto the nearest waterway crossing
// within thresh. Candidate pairs are consumed in ascending distance
// order so each waterway point is claimed by at most one segment; a
// segment that wins no waterway point is skipped, which is not an
// error.
func Align(inflows []ClassifiedPoint, wws []WaterwayCrossing, thresh float64, lg *zap.SugaredLogger) []AlignedEntryPoint {
	cands := make([]alignCandidate, 0, len(inflows))
	for i, in := range inflows {
		for j, w := range wws {
			if d := planar.Distance(in.Pt, w.Pt); d <= thresh {
				cands = append(cands, alignCandidate{is: i, iw: j, d: d})
			}
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].d != cands[j].d {
			return cands[i].d < cands[j].d
		}
		return inflows[cands[i].is].ObjectID < inflows[cands[j].is].ObjectID
	})

	clmS := make(map[int]bool, len(inflows))
	clmW := make(map[int]bool, len(wws))
	out := make([]AlignedEntryPoint, 0, len(inflows))
	for _, c := range cands {
		if clmS[c.is] || clmW[c.iw] {
			continue
		}
		clmS[c.is], clmW[c.iw] = true, true
		in, w := inflows[c.is], wws[c.iw]
		out = append(out, AlignedEntryPoint{
			ObjectID:   in.ObjectID,
			RiverPt:    in.Pt,
			WaterwayPt: w.Pt,
			WaterwayID: w.FeatureID,
			Dist:       c.d,
			Edge:       w.Edge,
		})
	}
	for i, in := range inflows {
		if !clmS[i] {
			lg.Infow("no waterway point within threshold; segment skipped",
				"object_id", in.ObjectID, "threshold_m", thresh)
		}
	}
	return out
}
