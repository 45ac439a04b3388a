package routing

import (
	"math"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

// Dijkstra. single pair shortest path on non-negative weights.
// equal priorities are popped in lexicographic order of the vertex name, and a label is only
// replaced by a strictly shorter one, so the returned path is deterministic.
type Dijkstra struct {
	graph RoutingGraph

	info map[string]*VertexInfo
	pq   *da.MinHeap[string]

	numSettledNodes int
	// first heap failure of the current query
	searchErr error
}

func NewDijkstra(graph RoutingGraph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		info:  make(map[string]*VertexInfo),
		pq:    da.NewFourAryHeap[string](),
	}
}

func (d *Dijkstra) preallocate() {
	n := d.graph.NumberOfVertices()
	d.info = make(map[string]*VertexInfo, n)
	d.pq.Clear()
	d.pq.Preallocate(n)
	d.numSettledNodes = 0
	d.searchErr = nil
}

func (d *Dijkstra) getInfo(u string) *VertexInfo {
	vi, ok := d.info[u]
	if !ok {
		vi = infVertexInfo()
		d.info[u] = vi
	}
	return vi
}

// ShortestPath. minimum total weight path from source to target.
// returns da.NoRoute() (distance +Inf, empty path) when target is unreachable,
// and *UnknownNodeError when source or target is not in the graph.
func (d *Dijkstra) ShortestPath(source, target string) (da.Route, error) {
	if !d.graph.HasNode(source) {
		return da.NoRoute(), util.WrapErrorf(&UnknownNodeError{Name: source}, util.ErrNotFound,
			"source %q not found", source)
	}
	if !d.graph.HasNode(target) {
		return da.NoRoute(), util.WrapErrorf(&UnknownNodeError{Name: target}, util.ErrNotFound,
			"target %q not found", target)
	}

	if source == target {
		return da.NewRoute(0, []string{source}), nil
	}

	d.preallocate()

	sNode := da.NewPriorityQueueNode(0, source)
	d.pq.Insert(sNode)
	d.info[source] = NewVertexInfo(0, "", sNode)

	for !d.pq.IsEmpty() {
		if d.graphSearch(target) {
			break
		}
	}
	if d.searchErr != nil {
		return da.NoRoute(), util.WrapErrorf(d.searchErr, util.ErrInternalServerError,
			"shortest path %q -> %q: %v", source, target, d.searchErr)
	}

	tInfo, ok := d.info[target]
	if !ok || !tInfo.IsSettled() || math.IsInf(tInfo.GetDist(), 1) {
		return da.NoRoute(), nil
	}

	return da.NewRoute(tInfo.GetDist(), d.retrievePath(source, target)), nil
}

// graphSearch. settle the vertex with the smallest label and relax its out edges.
// returns true once target is settled or the heap rejected an update.
func (d *Dijkstra) graphSearch(target string) bool {
	minNode, err := d.pq.ExtractMin()
	if err != nil {
		return true
	}
	u := minNode.GetItem()
	uInfo := d.info[u]
	if uInfo.IsSettled() {
		return false
	}
	uInfo.settle()
	d.numSettledNodes++

	if u == target {
		return true
	}

	d.graph.ForNeighbors(u, func(v string, weight float64) {
		if d.searchErr != nil {
			return
		}
		vInfo := d.getInfo(v)
		if vInfo.IsSettled() {
			return
		}

		newDist := uInfo.GetDist() + weight
		if newDist >= vInfo.GetDist() {
			// not strictly better
			return
		}

		if vInfo.GetHeapNode() != nil {
			if err := d.pq.DecreaseKey(vInfo.GetHeapNode(), newDist); err != nil {
				d.searchErr = err
				return
			}
			vInfo.UpdateDist(newDist)
			vInfo.UpdateParent(u)
			return
		}

		vNode := da.NewPriorityQueueNode(newDist, v)
		d.info[v] = NewVertexInfo(newDist, u, vNode)
		d.pq.Insert(vNode)
	})

	return d.searchErr != nil
}

func (d *Dijkstra) retrievePath(source, target string) []string {
	path := make([]string, 0, 8)
	for cur := target; ; cur = d.info[cur].GetParent() {
		path = append(path, cur)
		if cur == source {
			break
		}
	}
	return util.ReverseG(path)
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}

// ShortestPath. one-shot query, does not keep search state around.
func ShortestPath(graph RoutingGraph, source, target string) (da.Route, error) {
	return NewDijkstra(graph).ShortestPath(source, target)
}
