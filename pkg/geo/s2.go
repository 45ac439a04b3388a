package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// PointSegmentDistance. return in meter
func (g Geodesic) PointSegmentDistance(pointA, pointB, snap Coordinate) float64 {
	if pointA == pointB {
		return g.Distance(pointA, snap)
	}
	angle := s2.DistanceFromSegment(toS2Point(snap), toS2Point(pointA), toS2Point(pointB))
	return angle.Radians() * g.GetRadius()
}

// PointPolylineDistance. minimum distance (meter) from snap to any segment of coords. +Inf for an empty polyline.
func (g Geodesic) PointPolylineDistance(coords []Coordinate, snap Coordinate) float64 {
	switch len(coords) {
	case 0:
		return math.Inf(1)
	case 1:
		return g.Distance(coords[0], snap)
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(coords); i++ {
		best = math.Min(best, g.PointSegmentDistance(coords[i], coords[i+1], snap))
	}
	return best
}

// PointPolylineDistance. like Geodesic.PointPolylineDistance on the mean earth radius
func PointPolylineDistance(coords []Coordinate, snap Coordinate) float64 {
	return defaultGeodesic.PointPolylineDistance(coords, snap)
}
