package routing

import (
	"math"
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func lineGraph() (*da.LocationRegistry, *da.Graph) {
	a, b, c := geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1), geo.NewCoordinate(0, 2)
	reg, _ := da.NewLocationRegistry(map[string]geo.Coordinate{"A": a, "B": b, "C": c})
	ab, bc := geo.HaversineDistance(a, b), geo.HaversineDistance(b, c)
	g := da.NewGraph(reg.Names(), map[string]map[string]float64{
		"A": {"B": ab},
		"B": {"A": ab, "C": bc},
		"C": {"B": bc},
	})
	return reg, g
}

func TestShortestPathLine(t *testing.T) {
	_, g := lineGraph()

	route, err := ShortestPath(g, "A", "C")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, route.GetPath())
	assert.InEpsilon(t, 222390.0, route.GetDistance(), 1e-3)
	assert.True(t, route.Found())
	assert.Equal(t, route.GetPath(), reversePath(mustRoute(t, g, "C", "A").GetPath()))
}

func mustRoute(t *testing.T, g *da.Graph, s, target string) da.Route {
	t.Helper()
	r, err := ShortestPath(g, s, target)
	require.NoError(t, err)
	return r
}

func reversePath(p []string) []string {
	res := make([]string, len(p))
	for i := range p {
		res[len(p)-1-i] = p[i]
	}
	return res
}

func TestShortestPathEdgeCases(t *testing.T) {
	g := da.NewGraph([]string{"X", "Y", "Z"}, map[string]map[string]float64{
		"X": {"Y": 5},
		"Y": {"X": 5},
	})

	testCases := []struct {
		name      string
		source    string
		target    string
		wantDist  float64
		wantPath  []string
		wantFound bool
	}{
		{
			name:      "same node",
			source:    "X",
			target:    "X",
			wantDist:  0,
			wantPath:  []string{"X"},
			wantFound: true,
		},
		{
			name:      "isolated target",
			source:    "X",
			target:    "Z",
			wantDist:  math.Inf(1),
			wantPath:  []string{},
			wantFound: false,
		},
		{
			name:      "isolated source",
			source:    "Z",
			target:    "Y",
			wantDist:  math.Inf(1),
			wantPath:  []string{},
			wantFound: false,
		},
		{
			name:      "isolated node to itself",
			source:    "Z",
			target:    "Z",
			wantDist:  0,
			wantPath:  []string{"Z"},
			wantFound: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			route, err := ShortestPath(g, tt.source, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDist, route.GetDistance())
			assert.Equal(t, tt.wantPath, route.GetPath())
			assert.Equal(t, tt.wantFound, route.Found())
		})
	}
}

func TestShortestPathUnknownNode(t *testing.T) {
	_, g := lineGraph()

	for _, pair := range [][2]string{{"A", "Gym"}, {"Gym", "A"}, {"Gym", "Gym"}} {
		route, err := ShortestPath(g, pair[0], pair[1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownNode)
		assert.False(t, route.Found())
	}
}

func TestShortestPathTieBreak(t *testing.T) {
	// two equal length paths A-B-D and A-C-D
	g := da.NewGraph(nil, map[string]map[string]float64{
		"A": {"C": 1, "B": 1},
		"B": {"A": 1, "D": 1},
		"C": {"A": 1, "D": 1},
		"D": {"B": 1, "C": 1},
	})

	for i := 0; i < 20; i++ {
		route := mustRoute(t, g, "A", "D")
		assert.Equal(t, []string{"A", "B", "D"}, route.GetPath())
		assert.Equal(t, 2.0, route.GetDistance())
	}
}

func TestShortestPathDecreaseKey(t *testing.T) {
	// S-T direct is long, the detour through M is shorter and found after T is already queued
	g := da.NewGraph(nil, map[string]map[string]float64{
		"S": {"T": 10, "M": 1},
		"M": {"S": 1, "T": 2},
		"T": {"S": 10, "M": 2},
	})

	route := mustRoute(t, g, "S", "T")
	assert.Equal(t, []string{"S", "M", "T"}, route.GetPath())
	assert.Equal(t, 3.0, route.GetDistance())
}

func TestGraphSearchStopsOnHeapError(t *testing.T) {
	g := da.NewGraph(nil, map[string]map[string]float64{
		"S": {"T": 1},
	})
	d := NewDijkstra(g)
	d.preallocate()

	sNode := da.NewPriorityQueueNode(0, "S")
	d.pq.Insert(sNode)
	d.info["S"] = NewVertexInfo(0, "", sNode)
	// label of T points at a node that was never queued
	d.info["T"] = NewVertexInfo(10, "S", da.NewPriorityQueueNode(10, "T"))

	assert.True(t, d.graphSearch("T"))
	assert.ErrorIs(t, d.searchErr, da.ErrInvalidDecreaseKey)
	assert.Equal(t, 10.0, d.info["T"].GetDist())

	// a fresh query clears the failure
	route, err := d.ShortestPath("S", "T")
	require.NoError(t, err)
	assert.Equal(t, 1.0, route.GetDistance())
}

// bruteForce. shortest simple path by enumerating every simple path.
func bruteForce(g *da.Graph, source, target string) float64 {
	best := math.Inf(1)
	visited := map[string]bool{source: true}
	var dfs func(u string, dist float64)
	dfs = func(u string, dist float64) {
		if u == target {
			best = math.Min(best, dist)
			return
		}
		g.ForNeighbors(u, func(v string, w float64) {
			if visited[v] {
				return
			}
			visited[v] = true
			dfs(v, dist+w)
			visited[v] = false
		})
	}
	dfs(source, 0)
	return best
}

func randomGraph(rd *rand.Rand, n int, p float64) *da.Graph {
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	adj := make(map[string]map[string]float64)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rd.Float64() > p {
				continue
			}
			w := float64(rd.Intn(20))
			if adj[names[i]] == nil {
				adj[names[i]] = map[string]float64{}
			}
			if adj[names[j]] == nil {
				adj[names[j]] = map[string]float64{}
			}
			adj[names[i]][names[j]] = w
			adj[names[j]][names[i]] = w
		}
	}
	return da.NewGraph(names, adj)
}

func TestShortestPathMatchesBruteForce(t *testing.T) {
	rd := rand.New(rand.NewSource(42))

	for iter := 0; iter < 30; iter++ {
		g := randomGraph(rd, 7, 0.4)
		nodes := g.Nodes()
		for _, s := range nodes {
			for _, target := range nodes {
				route := mustRoute(t, g, s, target)
				want := bruteForce(g, s, target)
				if s == target {
					want = 0
				}

				if math.IsInf(want, 1) {
					assert.False(t, route.Found())
					continue
				}
				require.True(t, route.Found())
				assert.Equal(t, want, route.GetDistance())

				path := route.GetPath()
				assert.Equal(t, s, path[0])
				assert.Equal(t, target, path[len(path)-1])

				sum := 0.0
				for i := 0; i+1 < len(path); i++ {
					w, ok := g.GetWeight(path[i], path[i+1])
					require.True(t, ok)
					sum += w
				}
				assert.Equal(t, route.GetDistance(), sum)
			}
		}
	}
}

func TestRouter(t *testing.T) {
	reg, g := lineGraph()
	r := NewRouter(reg, g, zap.NewNop())

	route, coords, err := r.Route("C", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, route.GetPath())
	assert.Equal(t, []geo.Coordinate{
		geo.NewCoordinate(0, 2), geo.NewCoordinate(0, 1), geo.NewCoordinate(0, 0),
	}, coords)

	_, _, err = r.Route("A", "Gym")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestRouterDisconnected(t *testing.T) {
	reg, _ := da.NewLocationRegistry(map[string]geo.Coordinate{
		"A": geo.NewCoordinate(0, 0),
		"B": geo.NewCoordinate(0, 1),
	})
	g := da.NewGraph(reg.Names(), nil)
	r := NewRouter(reg, g, zap.NewNop())

	route, coords, err := r.Route("A", "B")
	require.NoError(t, err)
	assert.False(t, route.Found())
	assert.Empty(t, coords)
}
