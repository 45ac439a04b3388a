package datastructure

import (
	"sort"
)

type neighbor struct {
	name   string
	weight float64
}

// Graph. weighted adjacency over point of interest names, weight in meter.
// a Graph is never mutated after NewGraph, so it can be shared by concurrent queries.
type Graph struct {
	adjacency map[string]map[string]float64
	// sorted neighbor lists, fixed iteration order for deterministic search
	neighbors     map[string][]neighbor
	nodes         []string
	numberOfEdges int
	components    map[string]int
}

// NewGraph. build a graph with the given nodes and directed weighted entries. every name that appears
// in adjacency (as key or as neighbor) becomes a node too. self-loops are dropped.
func NewGraph(nodes []string, adjacency map[string]map[string]float64) *Graph {
	g := &Graph{
		adjacency: make(map[string]map[string]float64, len(nodes)),
		neighbors: make(map[string][]neighbor, len(nodes)),
	}

	addNode := func(name string) {
		if _, ok := g.adjacency[name]; !ok {
			g.adjacency[name] = make(map[string]float64)
		}
	}

	for _, name := range nodes {
		addNode(name)
	}

	for from, tos := range adjacency {
		addNode(from)
		for to, w := range tos {
			if to == from {
				continue
			}
			addNode(to)
			if _, ok := g.adjacency[from][to]; !ok {
				g.numberOfEdges++
			}
			g.adjacency[from][to] = w
		}
	}

	g.nodes = make([]string, 0, len(g.adjacency))
	for name, tos := range g.adjacency {
		g.nodes = append(g.nodes, name)

		ns := make([]neighbor, 0, len(tos))
		for to, w := range tos {
			ns = append(ns, neighbor{name: to, weight: w})
		}
		sort.Slice(ns, func(i, j int) bool {
			return ns[i].name < ns[j].name
		})
		g.neighbors[name] = ns
	}
	sort.Strings(g.nodes)

	g.computeComponents()
	return g
}

func (g *Graph) HasNode(name string) bool {
	_, ok := g.adjacency[name]
	return ok
}

// Nodes. node names in lexicographic order
func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

// NumberOfEdges. number of directed entries (an undirected edge counts twice)
func (g *Graph) NumberOfEdges() int {
	return g.numberOfEdges
}

func (g *Graph) GetWeight(from, to string) (float64, bool) {
	w, ok := g.adjacency[from][to]
	return w, ok
}

func (g *Graph) GetOutDegree(name string) int {
	return len(g.neighbors[name])
}

// ForNeighbors. iterate neighbors of u in lexicographic order of name
func (g *Graph) ForNeighbors(u string, handle func(v string, weight float64)) {
	for _, n := range g.neighbors[u] {
		handle(n.name, n.weight)
	}
}

// ForEdges. iterate every directed entry, ordered by tail then head
func (g *Graph) ForEdges(handle func(from, to string, weight float64)) {
	for _, u := range g.nodes {
		for _, n := range g.neighbors[u] {
			handle(u, n.name, n.weight)
		}
	}
}

// Neighbors. copy of the neighbor -> weight map of u
func (g *Graph) Neighbors(u string) map[string]float64 {
	res := make(map[string]float64, len(g.adjacency[u]))
	for v, w := range g.adjacency[u] {
		res[v] = w
	}
	return res
}

// Adjacency. deep copy of the whole adjacency
func (g *Graph) Adjacency() map[string]map[string]float64 {
	res := make(map[string]map[string]float64, len(g.adjacency))
	for u := range g.adjacency {
		res[u] = g.Neighbors(u)
	}
	return res
}

// computeComponents. label connected components of the undirected view of the graph (iterative dfs).
func (g *Graph) computeComponents() {
	undirected := make(map[string][]string, len(g.nodes))
	for _, u := range g.nodes {
		for _, n := range g.neighbors[u] {
			undirected[u] = append(undirected[u], n.name)
			undirected[n.name] = append(undirected[n.name], u)
		}
	}

	g.components = make(map[string]int, len(g.nodes))
	component := 0
	for _, s := range g.nodes {
		if _, visited := g.components[s]; visited {
			continue
		}
		stack := []string{s}
		g.components[s] = component
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, v := range undirected[u] {
				if _, visited := g.components[v]; !visited {
					g.components[v] = component
					stack = append(stack, v)
				}
			}
		}
		component++
	}
}

// NumberOfComponents. number of connected components of the undirected view
func (g *Graph) NumberOfComponents() int {
	n := 0
	for _, c := range g.components {
		if c+1 > n {
			n = c + 1
		}
	}
	return n
}

// VerticeUandVAreConnected. false means no path can exist between u and v in either direction.
func (g *Graph) VerticeUandVAreConnected(u, v string) bool {
	cu, okU := g.components[u]
	cv, okV := g.components[v]
	return okU && okV && cu == cv
}
