package tracking

import (
	"math"

	"github.com/lintang-b-s/campusnav/pkg/geo"
)

const DefaultArrivalRadiusMeters = 3.0

// ClosestIndex. index of the polyline point nearest to pos, first one on ties. -1 for an empty polyline.
func ClosestIndex(geodesic geo.Geodesic, pos geo.Coordinate, polyline []geo.Coordinate) int {
	return closestIndexFrom(geodesic, pos, polyline, 0)
}

func closestIndexFrom(geodesic geo.Geodesic, pos geo.Coordinate, polyline []geo.Coordinate, start int) int {
	best := -1
	bestDist := math.Inf(1)
	for i := start; i < len(polyline); i++ {
		d := geodesic.Distance(pos, polyline[i])
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func suffix(polyline []geo.Coordinate, from int) []geo.Coordinate {
	if from < 0 || from >= len(polyline) {
		return []geo.Coordinate{}
	}
	res := make([]geo.Coordinate, len(polyline)-from)
	copy(res, polyline[from:])
	return res
}

// TrackProgress. remaining part of the route, starting at the polyline point closest to pos.
// the nearest point is searched over the whole polyline, so a user who strays back toward an
// earlier point gets a longer suffix again. the input slice is never modified.
func TrackProgress(pos geo.Coordinate, polyline []geo.Coordinate) []geo.Coordinate {
	return suffix(polyline, ClosestIndex(geo.NewGeodesic(geo.EarthRadiusMeters), pos, polyline))
}

// RemainingDistance. length of the polyline in meter.
func RemainingDistance(polyline []geo.Coordinate) float64 {
	return polylineLength(geo.NewGeodesic(geo.EarthRadiusMeters), polyline)
}

func polylineLength(geodesic geo.Geodesic, polyline []geo.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(polyline); i++ {
		total += geodesic.Distance(polyline[i-1], polyline[i])
	}
	return total
}

// HasArrived. pos is within radiusMeters of the last polyline point.
func HasArrived(pos geo.Coordinate, polyline []geo.Coordinate, radiusMeters float64) bool {
	if len(polyline) == 0 {
		return false
	}
	return geo.IsWithinRadius(pos, polyline[len(polyline)-1], radiusMeters)
}

// OffRouteDistance. perpendicular distance in meter from pos to the nearest polyline segment.
func OffRouteDistance(pos geo.Coordinate, polyline []geo.Coordinate) float64 {
	return geo.PointPolylineDistance(polyline, pos)
}
