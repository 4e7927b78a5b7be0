package riverbc

import (
	"fmt"
	"strings"
)

// NoRiverDataError signals that no river segment intersects the model
// boundary at all. Callers may proceed without river forcing; the
// pipeline itself cannot.
type NoRiverDataError struct {
	Segments int // segments examined
}

func (e *NoRiverDataError) Error() string {
	return fmt.Sprintf("no river data: none of %d river segments intersect the model boundary", e.Segments)
}

// UnresolvableClassificationError reports a crossing whose
// direction/intersect attribute combination has no entry in the
// classification table. This indicates malformed upstream attribute
// data; the run aborts rather than guessing a category.
type UnresolvableClassificationError struct {
	ObjectID  int
	Direction NodeDirection
	Intersect NodeIntersect
}

func (e *UnresolvableClassificationError) Error() string {
	return fmt.Sprintf("segment %d: unresolvable crossing classification (node_direction=%s, node_intersect_aoi=%s)",
		e.ObjectID, e.Direction, e.Intersect)
}

// InvalidScenarioParameterError rejects a hydrograph request whose
// timing or scenario selection cannot be satisfied; Valid lists the
// acceptable alternatives for the offending parameter.
type InvalidScenarioParameterError struct {
	Param string
	Value string
	Valid []string
}

func (e *InvalidScenarioParameterError) Error() string {
	return fmt.Sprintf("invalid scenario parameter %s=%s (valid: %s)", e.Param, e.Value, strings.Join(e.Valid, ", "))
}
