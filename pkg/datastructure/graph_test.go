package datastructure

import (
	"bytes"
	"math"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRegistry(t *testing.T) {
	reg, err := NewLocationRegistry(map[string]geo.Coordinate{
		"Library":    geo.NewCoordinate(25.19195688448967, 55.25269232690334),
		"Auditorium": geo.NewCoordinate(25.191726310192312, 55.25262426584959),
		"Canteen":    geo.NewCoordinate(25.19165167683939, 55.2522661909461),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"Auditorium", "Canteen", "Library"}, reg.Names())
	assert.True(t, reg.Has("Library"))
	assert.False(t, reg.Has("Gym"))

	c, ok := reg.Get("Canteen")
	assert.True(t, ok)
	assert.Equal(t, geo.NewCoordinate(25.19165167683939, 55.2522661909461), c)

	coords, err := reg.ResolveCoordinates([]string{"Library", "Auditorium"})
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{
		geo.NewCoordinate(25.19195688448967, 55.25269232690334),
		geo.NewCoordinate(25.191726310192312, 55.25262426584959),
	}, coords)

	_, err = reg.ResolveCoordinates([]string{"Library", "Gym"})
	assert.ErrorIs(t, err, ErrUnknownLocation)

	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "Auditorium", reg.Names()[0])

	bb := reg.GetBoundingBox()
	require.NotNil(t, bb)
	assert.Equal(t, 25.19165167683939, bb.GetMinLat())
	assert.Equal(t, 55.25269232690334, bb.GetMaxLon())
	assert.Equal(t, geo.NewCoordinate((bb.GetMinLat()+bb.GetMaxLat())/2, (bb.GetMinLon()+bb.GetMaxLon())/2), bb.GetCenter())

	visited := []string{}
	reg.ForEachLocation(func(name string, _ geo.Coordinate) {
		visited = append(visited, name)
	})
	assert.Equal(t, reg.Names(), visited)
}

func TestLocationRegistryRejectsInvalidInput(t *testing.T) {
	_, err := NewLocationRegistry(map[string]geo.Coordinate{"": geo.NewCoordinate(0, 0)})
	assert.ErrorIs(t, err, ErrEmptyLocationName)

	_, err = NewLocationRegistry(map[string]geo.Coordinate{"North Pole+": geo.NewCoordinate(91, 0)})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	empty, err := NewLocationRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.GetBoundingBox())
}

func newTestGraph() *Graph {
	return NewGraph([]string{"E"}, map[string]map[string]float64{
		"A": {"B": 1, "A": 9},
		"B": {"A": 1, "C": 2},
		"C": {"B": 2},
		"D": {},
	})
}

func TestGraph(t *testing.T) {
	g := newTestGraph()

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, g.Nodes())
	assert.Equal(t, 5, g.NumberOfVertices())
	// self-loop A->A is dropped
	assert.Equal(t, 4, g.NumberOfEdges())
	assert.True(t, g.HasNode("E"))
	assert.False(t, g.HasNode("F"))

	w, ok := g.GetWeight("B", "C")
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)
	_, ok = g.GetWeight("A", "A")
	assert.False(t, ok)

	assert.Equal(t, 2, g.GetOutDegree("B"))

	var visited []string
	g.ForNeighbors("B", func(v string, _ float64) {
		visited = append(visited, v)
	})
	assert.Equal(t, []string{"A", "C"}, visited)

	neighbors := g.Neighbors("B")
	neighbors["Z"] = 100
	_, ok = g.GetWeight("B", "Z")
	assert.False(t, ok)

	assert.Equal(t, 3, g.NumberOfComponents())
	assert.True(t, g.VerticeUandVAreConnected("A", "C"))
	assert.False(t, g.VerticeUandVAreConnected("A", "D"))
	assert.False(t, g.VerticeUandVAreConnected("A", "F"))
	assert.True(t, g.VerticeUandVAreConnected("E", "E"))
}

func TestGraphNeighborOnlyNamesBecomeNodes(t *testing.T) {
	g := NewGraph(nil, map[string]map[string]float64{
		"A": {"B": 3},
	})

	assert.Equal(t, []string{"A", "B"}, g.Nodes())
	assert.Equal(t, 0, g.GetOutDegree("B"))
	assert.True(t, g.VerticeUandVAreConnected("B", "A"))
}

func TestWriteReadGraph(t *testing.T) {
	g := NewGraph([]string{"Swimming Pool"}, map[string]map[string]float64{
		"Basketball Court A": {"Auditorium": 28.48585204588383},
		"Auditorium":         {"Basketball Court A": 28.48585204588383, `Kid's "Play" area`: 0.1},
		`Kid's "Play" area`:  {"Auditorium": 0.1},
	})

	var buf bytes.Buffer
	require.NoError(t, g.WriteGraphTo(&buf))

	got, err := ReadGraphFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes(), got.Nodes())
	assert.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	assert.Equal(t, g.Adjacency(), got.Adjacency())
}

func TestReadGraphMalformed(t *testing.T) {
	_, err := ReadGraphFrom(bytes.NewBufferString("not bzip2"))
	assert.Error(t, err)

	_, _, err = readQuoted(`Library "Auditorium"`)
	assert.ErrorIs(t, err, ErrMalformedGraphFile)

	from, to, w, err := parseEdge(`"Book Store" "Auditorium" 41.15120118764267`)
	require.NoError(t, err)
	assert.Equal(t, "Book Store", from)
	assert.Equal(t, "Auditorium", to)
	assert.Equal(t, 41.15120118764267, w)

	_, _, _, err = parseEdge(`"Book Store" "Auditorium" far`)
	assert.ErrorIs(t, err, ErrMalformedGraphFile)
}

func compressSnapshot(t *testing.T, raw string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	return &buf
}

func TestReadGraphFromRejectsBadCounts(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "negative node count", raw: "-1 0\n"},
		{name: "negative edge count", raw: "0 -3\n"},
		{name: "missing edge line", raw: "2 2\n\"A\"\n\"B\"\n\"A\" \"B\" 1\n"},
		{name: "extra edge line", raw: "2 1\n\"A\"\n\"B\"\n\"A\" \"B\" 1\n\"B\" \"A\" 1\n"},
		{name: "duplicate edge", raw: "2 2\n\"A\"\n\"B\"\n\"A\" \"B\" 1\n\"A\" \"B\" 2\n"},
		{name: "duplicate node", raw: "2 0\n\"A\"\n\"A\"\n"},
		{name: "edge to unlisted node", raw: "1 1\n\"A\"\n\"A\" \"C\" 1\n"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			assert.NotPanics(t, func() {
				_, err = ReadGraphFrom(compressSnapshot(t, tt.raw))
			})
			assert.ErrorIs(t, err, ErrMalformedGraphFile)
		})
	}

	g, err := ReadGraphFrom(compressSnapshot(t, "2 2\n\"A\"\n\"B\"\n\"A\" \"B\" 1.5\n\"B\" \"A\" 1.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 2, g.NumberOfEdges())
}

func TestRoute(t *testing.T) {
	r := NewRoute(222389.85, []string{"A", "B", "C"})
	assert.True(t, r.Found())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, int64(222390), r.GetRoundedDistance())

	p := r.GetPath()
	p[0] = "Z"
	assert.Equal(t, []string{"A", "B", "C"}, r.GetPath())

	none := NoRoute()
	assert.False(t, none.Found())
	assert.True(t, math.IsInf(none.GetDistance(), 1))
	assert.Empty(t, none.GetPath())
	assert.NotNil(t, none.GetPath())
	assert.Equal(t, int64(-1), none.GetRoundedDistance())
}

func TestMinHeap(t *testing.T) {
	testCases := []struct {
		name string
		d    int
	}{
		{name: "binary heap", d: 2},
		{name: "four-ary heap", d: 4},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[string](tt.d)
			nodes := map[string]*PriorityQueueNode[string]{}
			for i, name := range []string{"delta", "alpha", "charlie", "bravo", "echo", "foxtrot"} {
				nodes[name] = NewPriorityQueueNode(float64(10-i), name)
				h.Insert(nodes[name])
			}
			// equal ranks are broken by item
			require.NoError(t, h.DecreaseKey(nodes["foxtrot"], 1))
			require.NoError(t, h.DecreaseKey(nodes["echo"], 1))
			assert.ErrorIs(t, h.DecreaseKey(nodes["delta"], 50), ErrInvalidDecreaseKey)

			min, err := h.GetMin()
			require.NoError(t, err)
			assert.Equal(t, "echo", min.GetItem())

			var order []string
			for !h.IsEmpty() {
				n, err := h.ExtractMin()
				require.NoError(t, err)
				order = append(order, n.GetItem())
				assert.Equal(t, -1, n.GetPos())
			}
			assert.Equal(t, []string{"echo", "foxtrot", "bravo", "charlie", "alpha", "delta"}, order)

			_, err = h.ExtractMin()
			assert.ErrorIs(t, err, ErrEmptyHeap)

			// extracted nodes are no longer in the heap
			assert.ErrorIs(t, h.DecreaseKey(nodes["alpha"], 0), ErrInvalidDecreaseKey)
		})
	}
}
