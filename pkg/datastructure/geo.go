package datastructure

import "github.com/lintang-b-s/campusnav/pkg/geo"

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b *BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b *BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b *BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b *BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}

// GetCenter. midpoint of the box, used by the map client as initial camera center
func (b *BoundingBox) GetCenter() geo.Coordinate {
	return geo.NewCoordinate((b.minLat+b.maxLat)/2, (b.minLon+b.maxLon)/2)
}
