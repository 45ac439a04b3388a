package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/campusnav/pkg/geo"
)

var (
	ErrEmptyLocationName = errors.New("location name must not be empty")
	ErrUnknownLocation   = errors.New("unknown location")
)

// LocationRegistry. name -> coordinate of every point of interest. read-only after NewLocationRegistry.
type LocationRegistry struct {
	locations map[string]geo.Coordinate
	names     []string // sorted
}

func NewLocationRegistry(locations map[string]geo.Coordinate) (*LocationRegistry, error) {
	reg := &LocationRegistry{
		locations: make(map[string]geo.Coordinate, len(locations)),
		names:     make([]string, 0, len(locations)),
	}

	for name, coord := range locations {
		if name == "" {
			return nil, ErrEmptyLocationName
		}
		if err := coord.Validate(); err != nil {
			return nil, fmt.Errorf("location %q: %w", name, err)
		}
		reg.locations[name] = coord
		reg.names = append(reg.names, name)
	}
	sort.Strings(reg.names)

	return reg, nil
}

func (r *LocationRegistry) Get(name string) (geo.Coordinate, bool) {
	c, ok := r.locations[name]
	return c, ok
}

func (r *LocationRegistry) Has(name string) bool {
	_, ok := r.locations[name]
	return ok
}

// Names. location names in lexicographic order
func (r *LocationRegistry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *LocationRegistry) Len() int {
	return len(r.names)
}

// ForEachLocation. iterate locations in lexicographic order of name
func (r *LocationRegistry) ForEachLocation(handle func(name string, coord geo.Coordinate)) {
	for _, name := range r.names {
		handle(name, r.locations[name])
	}
}

// ResolveCoordinates. map node names to their coordinates, in order.
func (r *LocationRegistry) ResolveCoordinates(names []string) ([]geo.Coordinate, error) {
	coords := make([]geo.Coordinate, 0, len(names))
	for _, name := range names {
		c, ok := r.locations[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// GetBoundingBox. smallest lat/lon box containing every location. nil for an empty registry.
func (r *LocationRegistry) GetBoundingBox() *BoundingBox {
	if len(r.names) == 0 {
		return nil
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range r.locations {
		minLat = math.Min(minLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLat = math.Max(maxLat, c.Lat)
		maxLon = math.Max(maxLon, c.Lon)
	}
	return NewBoundingBox(minLat, minLon, maxLat, maxLon)
}
