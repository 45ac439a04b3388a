package usecases

import (
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/util"
	"go.uber.org/zap"
)

type TrackingService struct {
	log     *zap.Logger
	tracker Tracker
}

func NewTrackingService(log *zap.Logger, tracker Tracker) *TrackingService {
	return &TrackingService{
		log:     log,
		tracker: tracker,
	}
}

// TrackProgress. remaining route for a live position. rejects coordinates outside the valid lat/lon range.
// arrivalRadius > 0 overrides the configured arrival radius.
func (ts *TrackingService) TrackProgress(pos geo.Coordinate, polyline []geo.Coordinate,
	arrivalRadius float64) (tracking.Progress, error) {
	if err := pos.Validate(); err != nil {
		return tracking.Progress{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid position: %v", err)
	}
	for i, c := range polyline {
		if err := c.Validate(); err != nil {
			return tracking.Progress{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid polyline point %d: %v", i, err)
		}
	}
	progress := ts.tracker.Track(pos, polyline)
	if arrivalRadius > 0 {
		progress.Arrived = tracking.HasArrived(pos, polyline, arrivalRadius)
	}
	return progress, nil
}

// NewSession. per user tracker that never moves back along the route.
func (ts *TrackingService) NewSession(polyline []geo.Coordinate) *tracking.MonotonicTracker {
	t, ok := ts.tracker.(*tracking.Tracker)
	if !ok {
		t = tracking.NewTracker(geo.NewGeodesic(geo.EarthRadiusMeters), tracking.DefaultArrivalRadiusMeters)
	}
	return tracking.NewMonotonicTracker(t, polyline)
}
