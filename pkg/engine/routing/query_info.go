package routing

import (
	"math"

	da "github.com/lintang-b-s/campusnav/pkg/datastructure"
)

// VertexInfo. tentative label of a vertex during the search.
type VertexInfo struct {
	dist     float64
	parent   string
	heapNode *da.PriorityQueueNode[string]
	settled  bool
}

func NewVertexInfo(dist float64, parent string, heapNode *da.PriorityQueueNode[string]) *VertexInfo {
	return &VertexInfo{
		dist:     dist,
		parent:   parent,
		heapNode: heapNode,
	}
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) GetParent() string {
	return vi.parent
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[string] {
	return vi.heapNode
}

func (vi *VertexInfo) UpdateDist(dist float64) {
	vi.dist = dist
}

func (vi *VertexInfo) UpdateParent(parent string) {
	vi.parent = parent
}

func (vi *VertexInfo) IsSettled() bool {
	return vi.settled
}

func (vi *VertexInfo) settle() {
	vi.settled = true
}

func infVertexInfo() *VertexInfo {
	return &VertexInfo{dist: math.Inf(1)}
}
