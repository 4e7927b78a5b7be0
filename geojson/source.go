// Package geojson implements a file-backed SpatialDataSource: river
// network and waterway survey layers held as GeoJSON feature
// collections. Callers state whether the files carry lat/lon; if so,
// coordinates are projected to UTM metres so all pipeline distances
// are planar.
package geojson

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	riverbc "github.com/GeospatialResearch/Digital-Twins-sub001"
	"github.com/im7mortal/UTM"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Source serves river and waterway layers from two GeoJSON files.
type Source struct {
	rivers    []*riverbc.RiverSegment
	waterways []*riverbc.WaterwayFeature
}

// New loads both layers. latlon declares the files' CRS: when true,
// every vertex is projected from lat/lon to UTM; when false,
// coordinates are taken as already-projected metres. The CRS is stated
// by the caller, never guessed from coordinate magnitudes.
func New(riverFP, waterwayFP string, latlon bool) (*Source, error) {
	s := &Source{}
	rfc, err := readFC(riverFP)
	if err != nil {
		return nil, err
	}
	for _, f := range rfc.Features {
		seg, err := toSegment(f, latlon)
		if err != nil {
			return nil, fmt.Errorf("geojson %s: %v", riverFP, err)
		}
		s.rivers = append(s.rivers, seg)
	}
	wfc, err := readFC(waterwayFP)
	if err != nil {
		return nil, err
	}
	for _, f := range wfc.Features {
		w, err := toWaterway(f, latlon)
		if err != nil {
			return nil, fmt.Errorf("geojson %s: %v", waterwayFP, err)
		}
		s.waterways = append(s.waterways, w)
	}
	return s, nil
}

func readFC(fp string) (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("geojson read: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("geojson %s: %v", fp, err)
	}
	return fc, nil
}

// RiverSegments returns the river-network lines whose bounds touch aoi.
func (s *Source) RiverSegments(ctx context.Context, aoi orb.Bound) ([]*riverbc.RiverSegment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*riverbc.RiverSegment
	for _, r := range s.rivers {
		if r.Geom.Bound().Intersects(aoi) {
			out = append(out, r)
		}
	}
	return out, nil
}

// WaterwayFeatures returns the surveyed waterway lines whose bounds
// touch aoi.
func (s *Source) WaterwayFeatures(ctx context.Context, aoi orb.Bound) ([]*riverbc.WaterwayFeature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*riverbc.WaterwayFeature
	for _, w := range s.waterways {
		if w.Geom.Bound().Intersects(aoi) {
			out = append(out, w)
		}
	}
	return out, nil
}

func toSegment(f *geojson.Feature, latlon bool) (*riverbc.RiverSegment, error) {
	ls, err := lineOf(f, latlon)
	if err != nil {
		return nil, err
	}
	oid := propInt(f, "object_id")
	stats := riverbc.FlowStats{
		MAF: riverbc.FlowEstimate{Flow: propFloat(f, "maf"), StdErr: propFloat(f, "maf_se")},
		RP:  map[int]riverbc.FlowEstimate{},
	}
	for k := range f.Properties {
		if !strings.HasPrefix(k, "q") || strings.HasSuffix(k, "_se") {
			continue
		}
		rp, err := strconv.Atoi(k[1:])
		if err != nil {
			continue
		}
		stats.RP[rp] = riverbc.FlowEstimate{Flow: propFloat(f, k), StdErr: propFloat(f, k+"_se")}
	}
	return &riverbc.RiverSegment{
		ObjectID:  oid,
		Direction: riverbc.ParseNodeDirection(propStr(f, "node_direction")),
		Intersect: riverbc.ParseNodeIntersect(propStr(f, "node_intersect_aoi")),
		AreaKm2:   propFloat(f, "area_km2"),
		Stats:     stats,
		Geom:      ls,
	}, nil
}

func toWaterway(f *geojson.Feature, latlon bool) (*riverbc.WaterwayFeature, error) {
	ls, err := lineOf(f, latlon)
	if err != nil {
		return nil, err
	}
	wt := riverbc.WaterwayRiver
	if propStr(f, "type") == "stream" {
		wt = riverbc.WaterwayStream
	}
	return &riverbc.WaterwayFeature{ID: propInt(f, "id"), Type: wt, Geom: ls}, nil
}

func lineOf(f *geojson.Feature, latlon bool) (orb.LineString, error) {
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("feature geometry is %s, need LineString", f.Geometry.GeoJSONType())
	}
	if latlon {
		return projectUTM(ls)
	}
	return ls, nil
}

func projectUTM(ls orb.LineString) (orb.LineString, error) {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		e, n, _, _, err := UTM.FromLatLon(p[1], p[0], p[1] >= 0.)
		if err != nil {
			return nil, fmt.Errorf("utm projection: %v", err)
		}
		out[i] = orb.Point{e, n}
	}
	return out, nil
}

func propStr(f *geojson.Feature, k string) string {
	if v, ok := f.Properties[k].(string); ok {
		return v
	}
	return ""
}

func propFloat(f *geojson.Feature, k string) float64 {
	switch v := f.Properties[k].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0.
}

func propInt(f *geojson.Feature, k string) int {
	switch v := f.Properties[k].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
