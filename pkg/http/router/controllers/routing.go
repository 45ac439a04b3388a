package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	helper "github.com/lintang-b-s/campusnav/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService  RoutingService
	trackingService TrackingService
	log             *zap.Logger
}

func New(routingService RoutingService, trackingService TrackingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService:  routingService,
		trackingService: trackingService,
		log:             log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/locations", api.locations)
	group.GET("/nearestLocation", api.nearestLocation)
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/trackProgress", api.trackProgress)
}

// locations godoc
//
//	@Summary		every point of interest of the campus
//	@Tags			locations
//	@Produce		json
//	@Router			/locations [get]
func (api *routingAPI) locations(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewLocationsResponse(api.routingService.Locations(),
		api.routingService.Bounds())},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// nearestLocation godoc
//
//	@Summary		closest point of interest to a position
//	@Tags			locations
//	@Produce		json
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"search radius in meter"
//	@Router			/nearestLocation [get]
func (api *routingAPI) nearestLocation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestLocationRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if radius := query.Get("radius"); radius != "" {
		request.Radius, err = strconv.ParseFloat(radius, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("radius must be a valid float"))
			return
		}
	}
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	loc, err := api.routingService.NearestLocation(request.Lat, request.Lon, request.Radius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestLocationResponse(loc)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPath godoc
//
//	@Summary		shortest walking route between two points of interest
//	@Tags			routing
//	@Produce		json
//	@Param			source	query	string	false	"source location name, required without lat and lon"
//	@Param			lat		query	number	false	"latitude of the user, snapped to the closest location"
//	@Param			lon		query	number	false	"longitude of the user"
//	@Param			target	query	string	true	"target location name"
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	if query.Get("source") == "" && (query.Has("lat") || query.Has("lon")) {
		api.routeFromPosition(w, r)
		return
	}
	request := shortestPathRequest{
		Source: query.Get("source"),
		Target: query.Get("target"),
	}
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, coords, err := api.routingService.ShortestPath(request.Source, request.Target)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(request.Source, request.Target,
		route, coords)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) routeFromPosition(w http.ResponseWriter, r *http.Request) {
	var (
		request routeFromPositionRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon must be a valid float"))
		return
	}
	request.Target = query.Get("target")
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	origin, res, err := api.routingService.RouteFromPosition(request.Lat, request.Lon, request.Target)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := NewShortestPathResponse(origin.GetName(), request.Target, res.Route, res.Coords)
	nearest := NewNearestLocationResponse(origin)
	resp.Origin = &nearest
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// trackProgress godoc
//
//	@Summary		remaining part of a route for a live position
//	@Tags			tracking
//	@Accept			json
//	@Produce		json
//	@Router			/trackProgress [post]
func (api *routingAPI) trackProgress(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request trackProgressRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	polyline, err := request.route()
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	progress, err := api.trackingService.TrackProgress(geo.NewCoordinate(request.Lat, request.Lon), polyline,
		request.ArrivalRadius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewTrackProgressResponse(progress)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// route. coordinates of the request, decoded from the polyline when no coordinates were sent.
func (req trackProgressRequest) route() ([]geo.Coordinate, error) {
	if len(req.Coordinates) > 0 {
		res := make([]geo.Coordinate, len(req.Coordinates))
		for i, c := range req.Coordinates {
			res[i] = c.toGeo()
		}
		return res, nil
	}
	if req.Polyline == "" {
		return []geo.Coordinate{}, nil
	}
	coords, err := geo.CoordsFromPolyline(req.Polyline)
	if err != nil {
		return nil, errors.New("polyline is not a valid encoded polyline")
	}
	return coords, nil
}
