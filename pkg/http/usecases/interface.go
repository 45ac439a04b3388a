package usecases

import (
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/spatialindex"
)

type RoutingEngine interface {
	GetRegistry() *datastructure.LocationRegistry
	ShortestPath(source, target string) (datastructure.Route, []geo.Coordinate, error)
}

type SpatialIndex interface {
	SearchWithinRadius(qLat, qLon, radius float64) []spatialindex.NearbyLocation
}

type Tracker interface {
	Track(pos geo.Coordinate, polyline []geo.Coordinate) tracking.Progress
}
