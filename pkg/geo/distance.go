package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/campusnav/pkg/util"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Validate. latitude must be in [-90,90] and longitude in [-180,180]
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

const (
	// mean earth radius
	EarthRadiusMeters = 6371000.0
)

// Geodesic. great-circle distance on a sphere with the given radius (in meter).
type Geodesic struct {
	radius float64
}

func NewGeodesic(radiusMeters float64) Geodesic {
	if radiusMeters <= 0 || math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) {
		radiusMeters = EarthRadiusMeters
	}
	return Geodesic{radius: radiusMeters}
}

func (g Geodesic) GetRadius() float64 {
	if g.radius == 0 {
		return EarthRadiusMeters
	}
	return g.radius
}

// Distance. haversine distance between a and b in meter
func (g Geodesic) Distance(a, b Coordinate) float64 {
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon, g.GetRadius())
}

var defaultGeodesic = NewGeodesic(EarthRadiusMeters)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func haversine(latOne, longOne, latTwo, longTwo, radius float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	// rounding can push a slightly above 1 for antipodal points
	a = math.Min(1.0, math.Max(0.0, a))
	c := 2.0 * math.Asin(math.Sqrt(a))
	return radius * c
}

// HaversineDistance. haversine distance in meter using the mean earth radius
func HaversineDistance(a, b Coordinate) float64 {
	return defaultGeodesic.Distance(a, b)
}

// IsWithinRadius. true if user is at most radiusMeters away from target
func IsWithinRadius(user, target Coordinate, radiusMeters float64) bool {
	return HaversineDistance(user, target) <= radiusMeters
}

// DestinationPoint returns the destination point given the starting point, bearing and distance
// dist in meter
func (g Geodesic) DestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / g.GetRadius()

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
