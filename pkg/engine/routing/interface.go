package routing

import (
	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
)

// RoutingGraph. read-only view of the graph the search runs on.
type RoutingGraph interface {
	HasNode(name string) bool
	NumberOfVertices() int
	ForNeighbors(u string, handle func(v string, weight float64))
	VerticeUandVAreConnected(u, v string) bool
}

var _ RoutingGraph = (*da.Graph)(nil)
