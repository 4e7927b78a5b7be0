// Package postgis implements a SpatialDataSource over a PostGIS store:
// river-network and waterway tables queried by catchment bounding
// envelope, geometries transferred as WKB.
package postgis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	riverbc "github.com/GeospatialResearch/Digital-Twins-sub001"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// Source queries river and waterway layers from PostGIS.
type Source struct {
	db                 *pgxpool.Pool
	riverTbl, wtrwyTbl string
}

func New(ctx context.Context, dsn, riverTbl, waterwayTbl string) (*Source, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgis.New: %v", err)
	}
	return &Source{db: db, riverTbl: riverTbl, wtrwyTbl: waterwayTbl}, nil
}

func (s *Source) Close() { s.db.Close() }

// RiverSegments queries the river-network rows intersecting aoi. The
// table schema carries the survey attributes alongside a jsonb column
// of per-return-period (flow, standard error) pairs.
func (s *Source) RiverSegments(ctx context.Context, aoi orb.Bound) ([]*riverbc.RiverSegment, error) {
	q := fmt.Sprintf(`SELECT object_id, node_direction, node_intersect_aoi, area_km2,
		maf, maf_se, rp_flows, ST_AsBinary(geom)
		FROM %s WHERE geom && ST_MakeEnvelope($1,$2,$3,$4)`, s.riverTbl)
	rows, err := s.db.Query(ctx, q, aoi.Min[0], aoi.Min[1], aoi.Max[0], aoi.Max[1])
	if err != nil {
		return nil, fmt.Errorf("postgis rivers: %v", err)
	}
	defer rows.Close()

	var out []*riverbc.RiverSegment
	for rows.Next() {
		var (
			oid           int
			dir, ni       string
			area, mf, mfe float64
			rpj, g        []byte
		)
		if err := rows.Scan(&oid, &dir, &ni, &area, &mf, &mfe, &rpj, &g); err != nil {
			return nil, fmt.Errorf("postgis rivers: %v", err)
		}
		ls, err := toLine(g)
		if err != nil {
			return nil, fmt.Errorf("postgis rivers object %d: %v", oid, err)
		}
		rp, err := parseRPflows(rpj)
		if err != nil {
			return nil, fmt.Errorf("postgis rivers object %d: %v", oid, err)
		}
		out = append(out, &riverbc.RiverSegment{
			ObjectID:  oid,
			Direction: riverbc.ParseNodeDirection(dir),
			Intersect: riverbc.ParseNodeIntersect(ni),
			AreaKm2:   area,
			Stats: riverbc.FlowStats{
				MAF: riverbc.FlowEstimate{Flow: mf, StdErr: mfe},
				RP:  rp,
			},
			Geom: ls,
		})
	}
	return out, rows.Err()
}

// WaterwayFeatures queries the waterway survey rows intersecting aoi.
func (s *Source) WaterwayFeatures(ctx context.Context, aoi orb.Bound) ([]*riverbc.WaterwayFeature, error) {
	q := fmt.Sprintf(`SELECT id, waterway, ST_AsBinary(geom)
		FROM %s WHERE waterway IN ('river','stream')
		AND geom && ST_MakeEnvelope($1,$2,$3,$4)`, s.wtrwyTbl)
	rows, err := s.db.Query(ctx, q, aoi.Min[0], aoi.Min[1], aoi.Max[0], aoi.Max[1])
	if err != nil {
		return nil, fmt.Errorf("postgis waterways: %v", err)
	}
	defer rows.Close()

	var out []*riverbc.WaterwayFeature
	for rows.Next() {
		var (
			id int
			wt string
			g  []byte
		)
		if err := rows.Scan(&id, &wt, &g); err != nil {
			return nil, fmt.Errorf("postgis waterways: %v", err)
		}
		ls, err := toLine(g)
		if err != nil {
			return nil, fmt.Errorf("postgis waterway %d: %v", id, err)
		}
		t := riverbc.WaterwayRiver
		if wt == "stream" {
			t = riverbc.WaterwayStream
		}
		out = append(out, &riverbc.WaterwayFeature{ID: id, Type: t, Geom: ls})
	}
	return out, rows.Err()
}

func toLine(g []byte) (orb.LineString, error) {
	geom, err := wkb.Unmarshal(g)
	if err != nil {
		return nil, fmt.Errorf("wkb: %v", err)
	}
	switch v := geom.(type) {
	case orb.LineString:
		return v, nil
	case orb.MultiLineString:
		if len(v) == 1 {
			return v[0], nil
		}
	}
	return nil, fmt.Errorf("geometry is %s, need LineString", geom.GeoJSONType())
}

// parseRPflows decodes {"50":[flow,se],...} into per-period estimates.
func parseRPflows(b []byte) (map[int]riverbc.FlowEstimate, error) {
	out := map[int]riverbc.FlowEstimate{}
	if len(b) == 0 {
		return out, nil
	}
	var m map[string][]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("rp_flows: %v", err)
	}
	for k, v := range m {
		rp, err := strconv.Atoi(k)
		if err != nil || len(v) != 2 {
			return nil, fmt.Errorf("rp_flows: bad entry %q", k)
		}
		out[rp] = riverbc.FlowEstimate{Flow: v[0], StdErr: v[1]}
	}
	return out, nil
}
