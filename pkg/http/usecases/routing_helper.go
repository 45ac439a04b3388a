package usecases

import (
	"errors"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/spatialindex"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

var ErrNoNearbyLocation = errors.New("no location nearby")

type RouteResult struct {
	Route  datastructure.Route
	Coords []geo.Coordinate
}

// NearestLocation. snap a raw gps position to the closest registered location within radius meter.
// radius <= 0 uses the configured search radius.
func (rs *RoutingService) NearestLocation(lat, lon, radius float64) (spatialindex.NearbyLocation, error) {
	if radius <= 0 {
		radius = rs.searchRadius
	}
	candidates := rs.spatialIndex.SearchWithinRadius(lat, lon, radius)
	if len(candidates) == 0 {
		return spatialindex.NearbyLocation{}, util.WrapErrorf(ErrNoNearbyLocation, util.ErrNotFound,
			"no location within %.0f meter of %f,%f", radius, lat, lon)
	}
	// sorted by distance
	return candidates[0], nil
}

// RouteFromPosition. route from the location closest to (lat, lon) to target.
func (rs *RoutingService) RouteFromPosition(lat, lon float64, target string) (spatialindex.NearbyLocation,
	RouteResult, error) {
	origin, err := rs.NearestLocation(lat, lon, 0)
	if err != nil {
		return origin, RouteResult{}, err
	}
	route, coords, err := rs.ShortestPath(origin.GetName(), target)
	if err != nil {
		return origin, RouteResult{}, err
	}
	return origin, RouteResult{Route: route, Coords: coords}, nil
}
