package riverbc

import (
	"context"

	"github.com/paulmach/orb"
)

// SpatialDataSource supplies the catchment-scoped vector datasets. The
// core pipeline performs no I/O of its own; implementations live in the
// geojson and postgis packages.
type SpatialDataSource interface {
	RiverSegments(ctx context.Context, aoi orb.Bound) ([]*RiverSegment, error)
	WaterwayFeatures(ctx context.Context, aoi orb.Bound) ([]*WaterwayFeature, error)
}

// RasterSource supplies the hydrologically conditioned elevation model:
// the modelled domain extent with its cell resolution, and clipped
// neighborhoods of elevation cells. Implementations should read the
// raster once per catchment request and serve clips from memory.
type RasterSource interface {
	Extent(ctx context.Context) (orb.Bound, float64, error)
	Clip(ctx context.Context, mask orb.Ring) (*DEMClip, error)
}
