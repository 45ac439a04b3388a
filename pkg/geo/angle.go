package geo

import (
	"math"

	"github.com/lintang-b-s/campusnav/pkg/util"
)

/*
BearingTo. initial bearing (degree, clockwise from north) when walking from p1 to p2.
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1, p2 Coordinate) float64 {

	dLon := util.DegreeToRadians(p2.Lon - p1.Lon)

	lat1 := util.DegreeToRadians(p1.Lat)
	lat2 := util.DegreeToRadians(p2.Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}
