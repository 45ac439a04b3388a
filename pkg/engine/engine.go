package engine

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/campusnav/pkg/dataset"
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/routing"
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/graphbuilder"
	"github.com/lintang-b-s/campusnav/pkg/spatialindex"
	"go.uber.org/zap"
)

type GraphMode string

const (
	// every pair of locations connected by its geodesic distance
	ModeMesh GraphMode = "mesh"
	// walking connections listed in the dataset
	ModeCurated GraphMode = "curated"
)

var ErrUnknownGraphMode = errors.New("unknown graph mode")

type Options struct {
	Mode          GraphMode
	EarthRadius   float64
	MeshWorkers   int
	ArrivalRadius float64
	// 0 disables the route cache
	RouteCacheSize int
}

func DefaultOptions() Options {
	return Options{
		Mode:           ModeMesh,
		EarthRadius:    geo.EarthRadiusMeters,
		MeshWorkers:    4,
		ArrivalRadius:  tracking.DefaultArrivalRadiusMeters,
		RouteCacheSize: 1024,
	}
}

type routeCacheKey struct {
	source string
	target string
}

type cachedRoute struct {
	route  datastructure.Route
	coords []geo.Coordinate
}

type Engine struct {
	registry   *datastructure.LocationRegistry
	graph      *datastructure.Graph
	router     *routing.Router
	tracker    *tracking.Tracker
	rtree      *spatialindex.Rtree
	routeCache *lru.Cache[routeCacheKey, cachedRoute]
	logger     *zap.Logger
}

// NewEngine. build the location registry, the graph for opts.Mode and the spatial index from a dataset.
func NewEngine(ds *dataset.Dataset, opts Options, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting campus routing engine...", zap.String("dataset", ds.Name),
		zap.String("mode", string(opts.Mode)))

	registry, err := ds.Registry()
	if err != nil {
		return nil, err
	}

	graph, err := BuildGraph(registry, ds, opts, logger)
	if err != nil {
		return nil, err
	}
	return newEngine(registry, graph, opts, logger)
}

// NewEngineFromSnapshot. like NewEngine but the graph is read from a preprocessed snapshot file.
func NewEngineFromSnapshot(graphFilePath string, ds *dataset.Dataset, opts Options, logger *zap.Logger) (*Engine, error) {
	registry, err := ds.Registry()
	if err != nil {
		return nil, err
	}

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	if err := graphbuilder.ValidateGraph(registry, graph); err != nil {
		return nil, fmt.Errorf("graph snapshot %s does not match dataset %q: %w", graphFilePath, ds.Name, err)
	}
	return newEngine(registry, graph, opts, logger)
}

// BuildGraph. graph of registry in the requested mode.
func BuildGraph(registry *datastructure.LocationRegistry, ds *dataset.Dataset, opts Options,
	logger *zap.Logger) (*datastructure.Graph, error) {
	gb := graphbuilder.NewGraphBuilder(registry, geo.NewGeodesic(opts.EarthRadius), opts.MeshWorkers, logger)

	switch opts.Mode {
	case ModeMesh, "":
		return gb.BuildCompleteMesh(), nil
	case ModeCurated:
		return gb.BuildCurated(ds.CuratedAdjacency())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGraphMode, opts.Mode)
	}
}

func newEngine(registry *datastructure.LocationRegistry, graph *datastructure.Graph, opts Options,
	logger *zap.Logger) (*Engine, error) {
	geodesic := geo.NewGeodesic(opts.EarthRadius)

	rtree := spatialindex.NewRtree(geodesic)
	rtree.Build(registry, logger)

	e := &Engine{
		registry: registry,
		graph:    graph,
		router:   routing.NewRouter(registry, graph, logger),
		tracker:  tracking.NewTracker(geodesic, opts.ArrivalRadius),
		rtree:    rtree,
		logger:   logger,
	}

	if opts.RouteCacheSize > 0 {
		cache, err := lru.New[routeCacheKey, cachedRoute](opts.RouteCacheSize)
		if err != nil {
			return nil, err
		}
		e.routeCache = cache
	}

	logger.Info("campus routing engine ready", zap.Int("locations", registry.Len()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("components", graph.NumberOfComponents()))
	return e, nil
}

// ShortestPath. route between two named locations plus its coordinates. results are cached per
// (source, target) pair, the graph never changes after construction.
func (e *Engine) ShortestPath(source, target string) (datastructure.Route, []geo.Coordinate, error) {
	key := routeCacheKey{source: source, target: target}
	if e.routeCache != nil {
		if cached, ok := e.routeCache.Get(key); ok {
			return cached.route, copyCoords(cached.coords), nil
		}
	}

	route, coords, err := e.router.Route(source, target)
	if err != nil {
		return route, nil, err
	}

	if e.routeCache != nil {
		e.routeCache.Add(key, cachedRoute{route: route, coords: copyCoords(coords)})
	}
	return route, coords, nil
}

func copyCoords(coords []geo.Coordinate) []geo.Coordinate {
	res := make([]geo.Coordinate, len(coords))
	copy(res, coords)
	return res
}

func (e *Engine) GetRegistry() *datastructure.LocationRegistry {
	return e.registry
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.rtree
}

func (e *Engine) GetTracker() *tracking.Tracker {
	return e.tracker
}
