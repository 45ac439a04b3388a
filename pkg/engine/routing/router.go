package routing

import (
	"sync"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/util"
	"go.uber.org/zap"
)

// Router. answers named location queries on one immutable graph. safe for concurrent use,
// every query gets its own Dijkstra state from a pool.
type Router struct {
	registry *da.LocationRegistry
	graph    *da.Graph
	log      *zap.Logger

	searchPool sync.Pool
}

func NewRouter(registry *da.LocationRegistry, graph *da.Graph, log *zap.Logger) *Router {
	r := &Router{
		registry: registry,
		graph:    graph,
		log:      log,
	}
	r.searchPool = sync.Pool{
		New: func() any {
			return NewDijkstra(graph)
		},
	}
	return r
}

// Route. shortest route between two named locations plus the coordinates of every vertex on the path.
func (r *Router) Route(source, target string) (da.Route, []geo.Coordinate, error) {
	if r.graph.HasNode(source) && r.graph.HasNode(target) &&
		!r.graph.VerticeUandVAreConnected(source, target) {
		r.log.Debug("source and target are in different components",
			zap.String("source", source), zap.String("target", target))
		return da.NoRoute(), []geo.Coordinate{}, nil
	}

	d := r.searchPool.Get().(*Dijkstra)
	defer r.searchPool.Put(d)

	route, err := d.ShortestPath(source, target)
	if err != nil {
		return route, nil, err
	}

	r.log.Debug("route computed", zap.String("source", source), zap.String("target", target),
		zap.Float64("distance", route.GetDistance()), zap.Int("settled", d.GetNumSettledNodes()))

	coords, err := r.ResolvePolyline(route)
	if err != nil {
		return route, nil, err
	}
	return route, coords, nil
}

// ResolvePolyline. map a route's vertex names to their registered coordinates.
func (r *Router) ResolvePolyline(route da.Route) ([]geo.Coordinate, error) {
	coords, err := r.registry.ResolveCoordinates(route.GetPath())
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "route references an unregistered location")
	}
	return coords, nil
}

func (r *Router) GetGraph() *da.Graph {
	return r.graph
}

func (r *Router) GetRegistry() *da.LocationRegistry {
	return r.registry
}
