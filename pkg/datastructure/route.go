package datastructure

import "math"

// Route. node names from source to target (inclusive) and the total distance in meter.
// an empty path with +Inf distance means no route exists.
type Route struct {
	distance float64
	path     []string
}

func NewRoute(distance float64, path []string) Route {
	p := make([]string, len(path))
	copy(p, path)
	return Route{distance: distance, path: p}
}

func NoRoute() Route {
	return Route{distance: math.Inf(1), path: []string{}}
}

func (r Route) GetDistance() float64 {
	return r.distance
}

func (r Route) GetPath() []string {
	p := make([]string, len(r.path))
	copy(p, r.path)
	return p
}

func (r Route) Len() int {
	return len(r.path)
}

func (r Route) Found() bool {
	return len(r.path) > 0 && !math.IsInf(r.distance, 1)
}

// GetRoundedDistance. distance rounded to the nearest whole meter for presentation
func (r Route) GetRoundedDistance() int64 {
	if !r.Found() {
		return -1
	}
	return int64(math.Round(r.distance))
}
