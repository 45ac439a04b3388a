package graphbuilder

import (
	"errors"
	"math"
	"testing"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func campusRegistry(t *testing.T) *da.LocationRegistry {
	t.Helper()
	reg, err := da.NewLocationRegistry(map[string]geo.Coordinate{
		"Admin Department":   geo.NewCoordinate(25.191468733915016, 55.253087282180786),
		"KG Play area":       geo.NewCoordinate(25.19106006937515, 55.25286767631769),
		"Basketball Court A": geo.NewCoordinate(25.191590999282994, 55.25286465883255),
		"Football Field":     geo.NewCoordinate(25.19242106563295, 55.253138579428196),
		"Canteen":            geo.NewCoordinate(25.19165167683939, 55.2522661909461),
		"Library":            geo.NewCoordinate(25.19195688448967, 55.25269232690334),
		"Auditorium":         geo.NewCoordinate(25.191726310192312, 55.25262426584959),
	})
	require.NoError(t, err)
	return reg
}

func TestBuildCompleteMesh(t *testing.T) {
	reg := campusRegistry(t)
	geodesic := geo.NewGeodesic(geo.EarthRadiusMeters)

	for _, workers := range []int{0, 1, 3, 16} {
		gb := NewGraphBuilder(reg, geodesic, workers, zap.NewNop())
		g := gb.BuildCompleteMesh()

		n := reg.Len()
		assert.Equal(t, n, g.NumberOfVertices())
		assert.Equal(t, n*(n-1), g.NumberOfEdges())
		assert.Equal(t, reg.Names(), g.Nodes())

		for _, u := range g.Nodes() {
			assert.Equal(t, n-1, g.GetOutDegree(u))
			uc, _ := reg.Get(u)
			g.ForNeighbors(u, func(v string, w float64) {
				vc, _ := reg.Get(v)
				assert.Equal(t, geodesic.Distance(uc, vc), w)
				back, ok := g.GetWeight(v, u)
				assert.True(t, ok)
				assert.Equal(t, w, back)
			})
		}
		assert.NoError(t, ValidateGraph(reg, g))
	}
}

func TestBuildCompleteMeshSingleLocation(t *testing.T) {
	reg, err := da.NewLocationRegistry(map[string]geo.Coordinate{"Library": geo.NewCoordinate(0, 0)})
	require.NoError(t, err)

	g := NewGraphBuilder(reg, geo.NewGeodesic(0), 2, zap.NewNop()).BuildCompleteMesh()
	assert.Equal(t, 1, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges())
}

func TestBuildCurated(t *testing.T) {
	reg := campusRegistry(t)
	gb := NewGraphBuilder(reg, geo.NewGeodesic(geo.EarthRadiusMeters), 1, zap.NewNop())

	g, err := gb.BuildCurated(map[string]map[string]float64{
		"Library":    {"Auditorium": 26.537535307816402},
		"Auditorium": {"Library": 26.537535307816402 * (1 + 1e-7), "Canteen": 36.97256944708198},
		"Canteen":    {"Auditorium": 36.97256944708198},
	})
	require.NoError(t, err)

	assert.Equal(t, reg.Len(), g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())
	assert.Equal(t, 0, g.GetOutDegree("Football Field"))
	assert.True(t, g.VerticeUandVAreConnected("Library", "Canteen"))
	assert.False(t, g.VerticeUandVAreConnected("Library", "Football Field"))
}

func TestBuildCuratedIntegrityErrors(t *testing.T) {
	testCases := []struct {
		name      string
		adjacency map[string]map[string]float64
		wantFrom  string
		wantTo    string
	}{
		{
			name: "missing reverse edge",
			adjacency: map[string]map[string]float64{
				"Library": {"Auditorium": 26.5},
			},
			wantFrom: "Library",
			wantTo:   "Auditorium",
		},
		{
			name: "asymmetric weight",
			adjacency: map[string]map[string]float64{
				"Canteen":    {"Auditorium": 36.9},
				"Auditorium": {"Canteen": 37.9},
			},
			wantFrom: "Auditorium",
			wantTo:   "Canteen",
		},
		{
			name: "unregistered neighbor",
			adjacency: map[string]map[string]float64{
				"Library": {"Gym": 10},
			},
			wantFrom: "Library",
			wantTo:   "Gym",
		},
		{
			name: "unregistered source",
			adjacency: map[string]map[string]float64{
				"Gym": {"Library": 10},
			},
			wantFrom: "Gym",
		},
		{
			name: "negative weight",
			adjacency: map[string]map[string]float64{
				"Library":    {"Auditorium": -1},
				"Auditorium": {"Library": -1},
			},
			wantFrom: "Auditorium",
			wantTo:   "Library",
		},
		{
			name: "infinite weight",
			adjacency: map[string]map[string]float64{
				"Library": {"Canteen": math.Inf(1)},
			},
			wantFrom: "Library",
			wantTo:   "Canteen",
		},
		{
			name: "self-loop",
			adjacency: map[string]map[string]float64{
				"Library": {"Library": 0},
			},
			wantFrom: "Library",
			wantTo:   "Library",
		},
	}

	gb := NewGraphBuilder(campusRegistry(t), geo.NewGeodesic(geo.EarthRadiusMeters), 1, zap.NewNop())
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := gb.BuildCurated(tt.adjacency)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGraphIntegrity)

			var integrityErr *GraphIntegrityError
			require.True(t, errors.As(err, &integrityErr))
			assert.Equal(t, tt.wantFrom, integrityErr.From)
			assert.Equal(t, tt.wantTo, integrityErr.To)
			assert.Contains(t, err.Error(), tt.wantFrom)
		})
	}
}

func TestSymmetrizeAdjacency(t *testing.T) {
	adjacency := map[string]map[string]float64{
		"Basketball Court A": {"Auditorium": 28.48585204588383},
		"Library":            {"Auditorium": 26.537535307816402},
		"Auditorium":         {"Library": 26.537535307816402},
	}

	sym := SymmetrizeAdjacency(adjacency)
	assert.Equal(t, 28.48585204588383, sym["Auditorium"]["Basketball Court A"])
	assert.Len(t, sym["Auditorium"], 2)
	// input untouched
	assert.Len(t, adjacency["Auditorium"], 1)

	assert.NoError(t, ValidateAdjacency(campusRegistry(t), sym))
}
