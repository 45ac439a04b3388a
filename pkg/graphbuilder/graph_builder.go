package graphbuilder

import (
	"math"
	"sort"

	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"go.uber.org/zap"
)

const (
	// relative tolerance when comparing the two directions of a curated edge
	SymmetryRelativeEpsilon = 1e-6
	// absolute tolerance for weights close to zero
	SymmetryAbsoluteEpsilon = 1e-9
)

type GraphBuilder struct {
	registry   *da.LocationRegistry
	geodesic   geo.Geodesic
	numWorkers int
	log        *zap.Logger
}

func NewGraphBuilder(registry *da.LocationRegistry, geodesic geo.Geodesic, numWorkers int,
	log *zap.Logger) *GraphBuilder {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &GraphBuilder{
		registry:   registry,
		geodesic:   geodesic,
		numWorkers: numWorkers,
		log:        log,
	}
}

type meshRow struct {
	from  string
	edges map[string]float64
}

// BuildCompleteMesh. complete graph over every registered location, weight = geodesic distance.
// each row (one source location) is an independent job of the worker pool.
func (gb *GraphBuilder) BuildCompleteMesh() *da.Graph {
	names := gb.registry.Names()
	gb.log.Info("building complete mesh graph", zap.Int("locations", len(names)),
		zap.Int("workers", gb.numWorkers))

	rows := concurrent.Run[string, meshRow](gb.numWorkers, names, func(from string) meshRow {
		fromCoord, _ := gb.registry.Get(from)
		edges := make(map[string]float64, len(names)-1)
		gb.registry.ForEachLocation(func(to string, toCoord geo.Coordinate) {
			if to == from {
				return
			}
			edges[to] = gb.geodesic.Distance(fromCoord, toCoord)
		})
		return meshRow{from: from, edges: edges}
	})

	adjacency := make(map[string]map[string]float64, len(rows))
	for _, row := range rows {
		adjacency[row.from] = row.edges
	}

	g := da.NewGraph(names, adjacency)
	gb.log.Info("complete mesh graph built", zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()))
	return g
}

// BuildCurated. graph from caller supplied adjacency with precomputed weights.
// every registered location becomes a node, locations without edges are isolated.
// edges are checked in lexicographic order, the first violation is returned as *GraphIntegrityError.
func (gb *GraphBuilder) BuildCurated(adjacency map[string]map[string]float64) (*da.Graph, error) {
	if err := ValidateAdjacency(gb.registry, adjacency); err != nil {
		gb.log.Error("curated adjacency rejected", zap.Error(err))
		return nil, err
	}

	g := da.NewGraph(gb.registry.Names(), adjacency)
	gb.log.Info("curated graph built", zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()), zap.Int("components", g.NumberOfComponents()))
	return g, nil
}

// ValidateAdjacency. every name registered, no self-loops, finite non-negative weights, and every edge has a reverse edge of equal weight.
func ValidateAdjacency(registry *da.LocationRegistry, adjacency map[string]map[string]float64) error {
	froms := make([]string, 0, len(adjacency))
	for from := range adjacency {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		if !registry.Has(from) {
			return newIntegrityError(from, "", "not present in the location registry")
		}

		tos := make([]string, 0, len(adjacency[from]))
		for to := range adjacency[from] {
			tos = append(tos, to)
		}
		sort.Strings(tos)

		for _, to := range tos {
			w := adjacency[from][to]
			if !registry.Has(to) {
				return newIntegrityError(from, to, "%q is not present in the location registry", to)
			}
			if to == from {
				return newIntegrityError(from, to, "self-loop")
			}
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return newIntegrityError(from, to, "weight %v must be finite and non-negative", w)
			}
			reverse, ok := adjacency[to][from]
			if !ok {
				return newIntegrityError(from, to, "reverse edge %q -> %q is missing", to, from)
			}
			if !weightsEqual(w, reverse) {
				return newIntegrityError(from, to, "asymmetric weight %v, reverse edge has %v", w, reverse)
			}
		}
	}
	return nil
}

// ValidateGraph. every node of g must be a registered location. used for graphs read from a snapshot.
func ValidateGraph(registry *da.LocationRegistry, g *da.Graph) error {
	for _, name := range g.Nodes() {
		if !registry.Has(name) {
			return newIntegrityError(name, "", "not present in the location registry")
		}
	}
	return ValidateAdjacency(registry, g.Adjacency())
}

func weightsEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= SymmetryAbsoluteEpsilon {
		return true
	}
	return diff <= SymmetryRelativeEpsilon*math.Max(math.Abs(a), math.Abs(b))
}

// SymmetrizeAdjacency. copy of adjacency where every edge a->b without a reverse gets b->a with the same weight.
// an existing reverse edge is kept as is.
func SymmetrizeAdjacency(adjacency map[string]map[string]float64) map[string]map[string]float64 {
	res := make(map[string]map[string]float64, len(adjacency))
	ensure := func(name string) {
		if _, ok := res[name]; !ok {
			res[name] = make(map[string]float64)
		}
	}

	for from, tos := range adjacency {
		ensure(from)
		for to, w := range tos {
			res[from][to] = w
		}
	}

	for from, tos := range adjacency {
		for to, w := range tos {
			ensure(to)
			if _, ok := res[to][from]; !ok {
				res[to][from] = w
			}
		}
	}
	return res
}
