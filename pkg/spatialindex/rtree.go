package spatialindex

import (
	"errors"
	"math"
	"sort"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoLocationNearby = errors.New("no location within the search radius")

type Rtree struct {
	tr       *rtree.RTreeG[LocationEntry]
	geodesic geo.Geodesic
}

// LocationEntry. a registered point of interest stored in a leaf of the tree.
type LocationEntry struct {
	name  string
	coord geo.Coordinate
}

func (le LocationEntry) GetName() string {
	return le.name
}

func (le LocationEntry) GetCoordinate() geo.Coordinate {
	return le.coord
}

func newLocationEntry(name string, coord geo.Coordinate) LocationEntry {
	return LocationEntry{
		name:  name,
		coord: coord,
	}
}

// NearbyLocation. search result, distance in meter.
type NearbyLocation struct {
	LocationEntry
	Distance float64
}

func NewRtree(geodesic geo.Geodesic) *Rtree {
	var tr rtree.RTreeG[LocationEntry]
	return &Rtree{
		tr:       &tr,
		geodesic: geodesic,
	}
}

// Build. one point leaf per registered location.
func (rt *Rtree) Build(registry *da.LocationRegistry, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("locations", registry.Len()))
	registry.ForEachLocation(func(name string, coord geo.Coordinate) {
		point := [2]float64{coord.Lon, coord.Lat}
		rt.tr.Insert(point, point, newLocationEntry(name, coord))
	})
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// searchBox. square around (qLat, qLon) whose half side is radius meter on the index's sphere.
// the corners lie radius*sqrt(2) away.
func (rt *Rtree) searchBox(qLat, qLon, radius float64) ([2]float64, [2]float64) {
	diag := radius * math.Sqrt2
	lowerLat, lowerLon := rt.geodesic.DestinationPoint(qLat, qLon, 225, diag)
	upperLat, upperLon := rt.geodesic.DestinationPoint(qLat, qLon, 45, diag)
	return [2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}
}

// SearchWithinRadius. every location whose haversine distance to (qLat, qLon) is at most radius meter,
// sorted by distance then name.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []NearbyLocation {
	q := geo.NewCoordinate(qLat, qLon)
	lower, upper := rt.searchBox(qLat, qLon, radius)

	results := make([]NearbyLocation, 0, 4)
	rt.tr.Search(lower, upper,
		func(min, max [2]float64, data LocationEntry) bool {
			d := rt.geodesic.Distance(q, data.coord)
			if d <= radius {
				results = append(results, NearbyLocation{LocationEntry: data, Distance: d})
			}
			return true
		})

	sortNearby(results)
	return results
}

func sortNearby(results []NearbyLocation) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].name < results[j].name
	})
}

// NearestLocation. closest registered location within radius meter of (qLat, qLon).
func (rt *Rtree) NearestLocation(qLat, qLon, radius float64) (NearbyLocation, error) {
	results := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(results) == 0 {
		return NearbyLocation{}, ErrNoLocationNearby
	}
	return results[0], nil
}
