package controllers

import (
	"math"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/http/usecases"
	"github.com/lintang-b-s/campusnav/pkg/spatialindex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type coordinate struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func (c coordinate) toGeo() geo.Coordinate {
	return geo.NewCoordinate(c.Lat, c.Lon)
}

func newCoordinates(coords []geo.Coordinate) []coordinate {
	res := make([]coordinate, len(coords))
	for i, c := range coords {
		res[i] = coordinate{Lat: c.Lat, Lon: c.Lon}
	}
	return res
}

type locationResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type boundsResponse struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
	// initial map center
	Center coordinate `json:"center"`
}

type locationsResponse struct {
	Count     int                `json:"count"`
	Locations []locationResponse `json:"locations"`
	// null when there are no locations
	Bounds *boundsResponse `json:"bounds"`
}

func NewLocationsResponse(locs []usecases.Location, bb *datastructure.BoundingBox) locationsResponse {
	res := locationsResponse{Count: len(locs), Locations: make([]locationResponse, len(locs))}
	for i, l := range locs {
		res.Locations[i] = locationResponse{Name: l.Name, Lat: l.Coord.Lat, Lon: l.Coord.Lon}
	}
	if bb != nil {
		center := bb.GetCenter()
		res.Bounds = &boundsResponse{
			MinLat: bb.GetMinLat(),
			MinLon: bb.GetMinLon(),
			MaxLat: bb.GetMaxLat(),
			MaxLon: bb.GetMaxLon(),
			Center: coordinate{Lat: center.Lat, Lon: center.Lon},
		}
	}
	return res
}

type nearestLocationRequest struct {
	Lat    float64 `validate:"min=-90,max=90"`
	Lon    float64 `validate:"min=-180,max=180"`
	Radius float64 `validate:"min=0,max=10000"`
}

type nearestLocationResponse struct {
	locationResponse
	Distance float64 `json:"distance"`
}

func NewNearestLocationResponse(loc spatialindex.NearbyLocation) nearestLocationResponse {
	c := loc.GetCoordinate()
	return nearestLocationResponse{
		locationResponse: locationResponse{Name: loc.GetName(), Lat: c.Lat, Lon: c.Lon},
		Distance:         loc.Distance,
	}
}

type shortestPathRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// routeFromPositionRequest. computeRoutes with a gps position instead of a source name.
type routeFromPositionRequest struct {
	Lat    float64 `validate:"min=-90,max=90"`
	Lon    float64 `validate:"min=-180,max=180"`
	Target string  `validate:"required"`
}

type shortestPathResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Found  bool   `json:"found"`
	// meter, null when no route exists
	Distance        *float64                   `json:"distance"`
	RoundedDistance *int64                     `json:"rounded_distance"`
	Path            []string                   `json:"path"`
	Coordinates     []coordinate               `json:"coordinates"`
	Polyline        string                     `json:"polyline"`
	GeoJSON         *geojson.FeatureCollection `json:"geojson,omitempty"`
	// location the position was snapped to, only for position requests
	Origin *nearestLocationResponse `json:"origin,omitempty"`
}

func NewShortestPathResponse(source, target string, route datastructure.Route,
	coords []geo.Coordinate) shortestPathResponse {
	resp := shortestPathResponse{
		Source:      source,
		Target:      target,
		Found:       route.Found(),
		Path:        route.GetPath(),
		Coordinates: newCoordinates(coords),
		Polyline:    geo.PolylineFromCoords(coords),
	}
	if route.Found() {
		dist := route.GetDistance()
		rounded := route.GetRoundedDistance()
		resp.Distance = &dist
		resp.RoundedDistance = &rounded
		resp.GeoJSON = newRouteFeatureCollection(route, coords)
	}
	return resp
}

// newRouteFeatureCollection. the route as a LineString plus one Point per visited location.
func newRouteFeatureCollection(route datastructure.Route, coords []geo.Coordinate) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c.Lon, c.Lat}
	}
	lineFeature := geojson.NewFeature(line)
	lineFeature.Properties["distance"] = route.GetDistance()
	fc.Append(lineFeature)

	path := route.GetPath()
	for i, c := range coords {
		pointFeature := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		pointFeature.Properties["name"] = path[i]
		pointFeature.Properties["order"] = i
		fc.Append(pointFeature)
	}
	return fc
}

type trackProgressRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	// encoded polyline, used when Coordinates is empty
	Polyline      string       `json:"polyline"`
	Coordinates   []coordinate `json:"coordinates" validate:"dive"`
	ArrivalRadius float64      `json:"arrival_radius" validate:"min=0"`
}

type trackProgressResponse struct {
	Remaining         []coordinate `json:"remaining"`
	RemainingPolyline string       `json:"remaining_polyline"`
	ClosestIndex      int          `json:"closest_index"`
	RemainingDistance float64      `json:"remaining_distance"`
	// null for an empty route
	OffRouteDistance *float64 `json:"off_route_distance"`
	Bearing          float64  `json:"bearing"`
	Arrived          bool     `json:"arrived"`
}

func NewTrackProgressResponse(p tracking.Progress) trackProgressResponse {
	resp := trackProgressResponse{
		Remaining:         newCoordinates(p.Remaining),
		RemainingPolyline: geo.PolylineFromCoords(p.Remaining),
		ClosestIndex:      p.ClosestIndex,
		RemainingDistance: p.RemainingDistance,
		Bearing:           p.Bearing,
		Arrived:           p.Arrived,
	}
	if !math.IsInf(p.OffRouteDistance, 0) && !math.IsNaN(p.OffRouteDistance) {
		off := p.OffRouteDistance
		resp.OffRouteDistance = &off
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
