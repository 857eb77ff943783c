// Package route turns a waypoint-id path into routable geometry: the full
// polyline, per-floor segments, total distance and time estimates.
package route

import (
	"math"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

const (
	// LegacySpeedDivisor is the divisor of the distance/time summaries
	// (meters / 74).
	LegacySpeedDivisor = 74.0

	// WalkingMetersPerMinute is the walking speed behind the minute
	// estimate shown with instructions (3 mph).
	WalkingMetersPerMinute = 80.4672
)

// Segment is a maximal run of consecutive path waypoints on one level
type Segment struct {
	Level  int         `json:"level"`
	Points []geo.Point `json:"points"`
}

// Route is the geometry of one routing request
type Route struct {
	Path                []string    `json:"path"`
	FullPath            []geo.Point `json:"full_path"`
	Segments            []Segment   `json:"segments"`
	TotalDistanceMeters float64     `json:"total_distance_meters"`
	// EstimatedTime is TotalDistanceMeters / LegacySpeedDivisor
	EstimatedTime float64 `json:"estimated_time"`
	// WalkingMinutes is round(TotalDistanceMeters / WalkingMetersPerMinute)
	WalkingMinutes int `json:"walking_minutes"`
}

// Empty reports whether the route has no geometry
func (r *Route) Empty() bool {
	return r == nil || len(r.Path) == 0
}

// Hops returns the number of edges traversed
func (r *Route) Hops() int {
	if r.Empty() {
		return 0
	}
	return len(r.Path) - 1
}

// Levels returns the segment levels in path order
func (r *Route) Levels() []int {
	if r == nil {
		return nil
	}
	levels := make([]int, len(r.Segments))
	for i, s := range r.Segments {
		levels[i] = s.Level
	}
	return levels
}

// FromPath resolves each path id against the store and builds the route.
// Segmentation is positional: every level change starts a new segment, so
// returning to an earlier level later in the path yields a new segment.
// An id missing from the store fails with waypoint.ErrUnknownWaypoint.
func FromPath(path []string, store *waypoint.Store) (*Route, error) {
	r := &Route{
		Path:     append([]string(nil), path...),
		FullPath: make([]geo.Point, 0, len(path)),
	}

	for i, id := range path {
		wp, err := store.Lookup(id)
		if err != nil {
			return nil, err
		}

		r.FullPath = append(r.FullPath, wp.Point)

		if i == 0 || wp.Level != r.Segments[len(r.Segments)-1].Level {
			r.Segments = append(r.Segments, Segment{Level: wp.Level})
		}
		last := &r.Segments[len(r.Segments)-1]
		last.Points = append(last.Points, wp.Point)
	}

	r.TotalDistanceMeters = geo.PathLength(r.FullPath)
	r.EstimatedTime = EstimatedTime(r.TotalDistanceMeters)
	r.WalkingMinutes = WalkingMinutes(r.TotalDistanceMeters)
	return r, nil
}

// EstimatedTime returns meters / LegacySpeedDivisor
func EstimatedTime(meters float64) float64 {
	return meters / LegacySpeedDivisor
}

// WalkingMinutes returns round(meters / WalkingMetersPerMinute)
func WalkingMinutes(meters float64) int {
	return int(math.Round(meters / WalkingMetersPerMinute))
}

// SegmentsOnLevel returns the segments drawn on one floor, in path order
func SegmentsOnLevel(segments []Segment, level int) []Segment {
	var out []Segment
	for _, s := range segments {
		if s.Level == level {
			out = append(out, s)
		}
	}
	return out
}
