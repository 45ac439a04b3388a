package controllers

import (
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/http/usecases"
	"github.com/lintang-b-s/campusnav/pkg/spatialindex"
)

type RoutingService interface {
	Locations() []usecases.Location
	Bounds() *datastructure.BoundingBox
	NearestLocation(lat, lon, radius float64) (spatialindex.NearbyLocation, error)
	ShortestPath(source, target string) (datastructure.Route, []geo.Coordinate, error)
	RouteFromPosition(lat, lon float64, target string) (spatialindex.NearbyLocation, usecases.RouteResult, error)
}

type TrackingService interface {
	TrackProgress(pos geo.Coordinate, polyline []geo.Coordinate, arrivalRadius float64) (tracking.Progress, error)
	NewSession(polyline []geo.Coordinate) *tracking.MonotonicTracker
}
