package route

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

func newStore(t *testing.T, points ...waypoint.Waypoint) *waypoint.Store {
	t.Helper()
	store, err := waypoint.NewStore(points)
	require.NoError(t, err)
	return store
}

func wp(id string, lng, lat float64, level int) waypoint.Waypoint {
	return waypoint.Waypoint{ID: id, Point: geo.NewPoint(lng, lat), Level: level}
}

func TestFromPath_CrossFloorScenario(t *testing.T) {
	store := newStore(t,
		wp("A", 0, 0, 0),
		wp("B", 0, 0.001, 0),
		waypoint.Waypoint{ID: "C", Point: geo.NewPoint(0, 0.001), Level: 1, Kind: waypoint.KindElevator},
	)

	r, err := FromPath([]string{"A", "B", "C"}, store)
	require.NoError(t, err)

	require.Len(t, r.Segments, 2)
	assert.Equal(t, Segment{Level: 0, Points: []geo.Point{geo.NewPoint(0, 0), geo.NewPoint(0, 0.001)}}, r.Segments[0])
	assert.Equal(t, Segment{Level: 1, Points: []geo.Point{geo.NewPoint(0, 0.001)}}, r.Segments[1])
	assert.Equal(t, []int{0, 1}, r.Levels())
	assert.Equal(t, 2, r.Hops())

	wantDist := geo.Haversine(geo.NewPoint(0, 0), geo.NewPoint(0, 0.001))
	assert.InDelta(t, wantDist, r.TotalDistanceMeters, 1e-9)
	assert.InDelta(t, wantDist/74, r.EstimatedTime, 1e-9)
	assert.Equal(t, int(math.Round(wantDist/80.4672)), r.WalkingMinutes)
}

func TestFromPath_RevisitedLevelStartsNewSegment(t *testing.T) {
	store := newStore(t,
		wp("A", 0, 0, 0),
		wp("B", 0, 0.0001, 1),
		wp("C", 0, 0.0002, 1),
		wp("D", 0, 0.0003, 0),
	)

	r, err := FromPath([]string{"A", "B", "C", "D"}, store)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 0}, r.Levels())
	assert.Len(t, r.Segments[1].Points, 2)
	assert.Len(t, SegmentsOnLevel(r.Segments, 0), 2)
	assert.Len(t, SegmentsOnLevel(r.Segments, 7), 0)
}

func TestFromPath_UnknownWaypoint(t *testing.T) {
	store := newStore(t, wp("A", 0, 0, 0))

	_, err := FromPath([]string{"A", "ghost"}, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, waypoint.ErrUnknownWaypoint)
}

func TestFromPath_EmptyPath(t *testing.T) {
	store := newStore(t, wp("A", 0, 0, 0))

	r, err := FromPath(nil, store)
	require.NoError(t, err)
	assert.True(t, r.Empty())
	assert.Empty(t, r.Segments)
	assert.Zero(t, r.TotalDistanceMeters)
	assert.Zero(t, r.WalkingMinutes)
}

func TestTimeEstimates(t *testing.T) {
	tests := []struct {
		meters      float64
		wantLegacy  float64
		wantMinutes int
	}{
		{0, 0, 0},
		{74, 1, 1},
		{80.4672, 80.4672 / 74, 1},
		{120, 120.0 / 74, 1},
		{121, 121.0 / 74, 2},
		{804.672, 804.672 / 74, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%vm", tt.meters), func(t *testing.T) {
			assert.InDelta(t, tt.wantLegacy, EstimatedTime(tt.meters), 1e-9)
			assert.Equal(t, tt.wantMinutes, WalkingMinutes(tt.meters))
		})
	}
}

// TestSegmentProperties checks segmentation invariants over random level walks
func TestSegmentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	build := func(levels []int) ([]string, *waypoint.Store) {
		points := make([]waypoint.Waypoint, len(levels))
		path := make([]string, len(levels))
		for i, level := range levels {
			id := fmt.Sprintf("w%d", i)
			points[i] = wp(id, float64(i)*0.0001, float64(i%3)*0.0001, level)
			path[i] = id
		}
		store, _ := waypoint.NewStore(points)
		return path, store
	}

	properties.Property("concatenated segments reproduce the full path", prop.ForAll(
		func(levels []int) bool {
			path, store := build(levels)
			r, err := FromPath(path, store)
			if err != nil {
				return false
			}
			var joined []geo.Point
			for _, s := range r.Segments {
				joined = append(joined, s.Points...)
			}
			if len(joined) != len(r.FullPath) {
				return false
			}
			for i := range joined {
				if joined[i] != r.FullPath[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-2, 3)),
	))

	properties.Property("segment count is one plus level changes", prop.ForAll(
		func(levels []int) bool {
			path, store := build(levels)
			r, err := FromPath(path, store)
			if err != nil {
				return false
			}
			if len(levels) == 0 {
				return len(r.Segments) == 0
			}
			changes := 0
			for i := 1; i < len(levels); i++ {
				if levels[i] != levels[i-1] {
					changes++
				}
			}
			return len(r.Segments) == 1+changes
		},
		gen.SliceOf(gen.IntRange(-2, 3)),
	))

	properties.Property("total distance equals polyline length", prop.ForAll(
		func(levels []int) bool {
			path, store := build(levels)
			r, err := FromPath(path, store)
			if err != nil {
				return false
			}
			return math.Abs(r.TotalDistanceMeters-geo.PathLength(r.FullPath)) < 1e-9
		},
		gen.SliceOf(gen.IntRange(-2, 3)),
	))

	properties.TestingRun(t)
}
