package riverbc

import (
	"fmt"
	"strconv"
)

// ScenarioBound selects the standard-error adjustment applied to the
// scenario's flow statistic.
type ScenarioBound int

const (
	BoundLower ScenarioBound = iota
	BoundMiddle
	BoundUpper
)

func ParseScenarioBound(s string) (ScenarioBound, bool) {
	switch s {
	case "lower":
		return BoundLower, true
	case "middle":
		return BoundMiddle, true
	case "upper":
		return BoundUpper, true
	}
	return 0, false
}

func (b ScenarioBound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "middle"
}

// Scenario selects the flow statistic driving the hydrograph: the mean
// annual flood when ReturnPeriod is zero, otherwise the named return
// period, adjusted to Bound.
type Scenario struct {
	ReturnPeriod int // years; 0 selects MAF
	Bound        ScenarioBound
}

// peakFlow resolves the scenario against a segment's statistics.
func (sc Scenario) peakFlow(fs FlowStats) (float64, error) {
	est := fs.MAF
	if sc.ReturnPeriod != 0 {
		var ok bool
		if est, ok = fs.RP[sc.ReturnPeriod]; !ok {
			return 0., &InvalidScenarioParameterError{
				Param: "return_period",
				Value: strconv.Itoa(sc.ReturnPeriod),
				Valid: fs.validScenarios(),
			}
		}
	}
	switch sc.Bound {
	case BoundLower:
		return max(est.Flow-est.StdErr, 0.), nil
	case BoundUpper:
		return est.Flow + est.StdErr, nil
	default:
		return est.Flow, nil
	}
}

// Synthesize builds the 3-point triangular hydrograph (rise, peak,
// recede) for one refined input point: samples at tp−L/2, tp and tp+L/2
// carrying 0.1·MAF, the scenario's bound-adjusted flow, and zero. The
// event timing must satisfy tp ≥ L/2 so the rise never starts before
// minute zero.
func Synthesize(rip RefinedInputPoint, fs FlowStats, sc Scenario, flowLengthMins, timeToPeakMins float64) ([]HydrographSample, error) {
	half := flowLengthMins / 2.
	if timeToPeakMins < half {
		return nil, &InvalidScenarioParameterError{
			Param: "time_to_peak_mins",
			Value: fmt.Sprintf("%g", timeToPeakMins),
			Valid: []string{fmt.Sprintf(">= %g (flow_length_mins/2)", half)},
		}
	}
	qp, err := sc.peakFlow(fs)
	if err != nil {
		return nil, err
	}

	smp := func(t, q float64) HydrographSample {
		return HydrographSample{
			PointNo:    rip.PointNo,
			OffsetMins: t,
			Flow:       q,
			AreaKm2:    rip.AreaKm2,
			Resolution: rip.Resolution,
		}
	}
	return []HydrographSample{
		smp(timeToPeakMins-half, 0.1*fs.MAF.Flow),
		smp(timeToPeakMins, qp),
		smp(timeToPeakMins+half, 0.),
	}, nil
}
