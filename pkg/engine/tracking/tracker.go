package tracking

import (
	"math"
	"sync"

	"github.com/lintang-b-s/campusnav/pkg/geo"
)

// Progress. one position update along a route.
type Progress struct {
	Remaining         []geo.Coordinate
	ClosestIndex      int
	RemainingDistance float64
	OffRouteDistance  float64
	// bearing from pos to the next remaining point, degree in [0, 360)
	Bearing float64
	Arrived bool
}

type Tracker struct {
	geodesic      geo.Geodesic
	arrivalRadius float64
}

func NewTracker(geodesic geo.Geodesic, arrivalRadius float64) *Tracker {
	if arrivalRadius <= 0 || math.IsNaN(arrivalRadius) {
		arrivalRadius = DefaultArrivalRadiusMeters
	}
	return &Tracker{geodesic: geodesic, arrivalRadius: arrivalRadius}
}

func (t *Tracker) GetArrivalRadius() float64 {
	return t.arrivalRadius
}

// Track. nearest point progress of pos along polyline, see TrackProgress.
func (t *Tracker) Track(pos geo.Coordinate, polyline []geo.Coordinate) Progress {
	return t.progress(pos, polyline, ClosestIndex(t.geodesic, pos, polyline))
}

func (t *Tracker) progress(pos geo.Coordinate, polyline []geo.Coordinate, closest int) Progress {
	remaining := suffix(polyline, closest)
	p := Progress{
		Remaining:         remaining,
		ClosestIndex:      closest,
		RemainingDistance: polylineLength(t.geodesic, remaining),
		OffRouteDistance:  t.geodesic.PointPolylineDistance(polyline, pos),
	}
	if len(polyline) > 0 {
		p.Arrived = t.geodesic.Distance(pos, polyline[len(polyline)-1]) <= t.arrivalRadius
	}

	if len(remaining) > 1 {
		p.Bearing = geo.BearingTo(pos, remaining[1])
	} else if len(remaining) == 1 {
		p.Bearing = geo.BearingTo(pos, remaining[0])
	}
	return p
}

// MonotonicTracker. progress along a fixed polyline that never moves backward: the closest point
// is only searched from the last returned index onward. unlike TrackProgress, a user walking back
// keeps the suffix they already reached.
type MonotonicTracker struct {
	mu       sync.Mutex
	tracker  *Tracker
	polyline []geo.Coordinate
	last     int
}

func NewMonotonicTracker(tracker *Tracker, polyline []geo.Coordinate) *MonotonicTracker {
	mt := &MonotonicTracker{tracker: tracker}
	mt.Reset(polyline)
	return mt
}

// Update. progress for a new position.
func (mt *MonotonicTracker) Update(pos geo.Coordinate) Progress {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	closest := closestIndexFrom(mt.tracker.geodesic, pos, mt.polyline, mt.last)
	if closest >= 0 {
		mt.last = closest
	}
	return mt.tracker.progress(pos, mt.polyline, closest)
}

// Reset. start over on a new polyline.
func (mt *MonotonicTracker) Reset(polyline []geo.Coordinate) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.polyline = make([]geo.Coordinate, len(polyline))
	copy(mt.polyline, polyline)
	mt.last = 0
}

func (mt *MonotonicTracker) GetLastIndex() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.last
}
