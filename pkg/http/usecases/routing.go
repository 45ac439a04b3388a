package usecases

import (
	"errors"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/routing"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/util"
	"go.uber.org/zap"
)

// Location. one entry of the location listing.
type Location struct {
	Name  string
	Coord geo.Coordinate
}

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// Locations. every registered location, sorted by name.
func (rs *RoutingService) Locations() []Location {
	reg := rs.engine.GetRegistry()
	res := make([]Location, 0, reg.Len())
	reg.ForEachLocation(func(name string, coord geo.Coordinate) {
		res = append(res, Location{Name: name, Coord: coord})
	})
	return res
}

// Bounds. box around every registered location, nil when the registry is empty.
func (rs *RoutingService) Bounds() *datastructure.BoundingBox {
	return rs.engine.GetRegistry().GetBoundingBox()
}

// ShortestPath. route between two named locations. an unreachable target is not an error,
// the returned route has Found() == false.
func (rs *RoutingService) ShortestPath(source, target string) (datastructure.Route, []geo.Coordinate, error) {
	route, coords, err := rs.engine.ShortestPath(source, target)
	if err != nil {
		if errors.Is(err, routing.ErrUnknownNode) {
			return datastructure.NoRoute(), nil, util.WrapErrorf(err, util.ErrNotFound, "%s", err.Error())
		}
		return datastructure.NoRoute(), nil, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path %q -> %q failed", source, target)
	}

	if !route.Found() {
		rs.log.Info("no route between locations", zap.String("source", source), zap.String("target", target))
	}
	return route, coords, nil
}
