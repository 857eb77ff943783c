package waypoint

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
)

func wp(id string, lng, lat float64, level int, kind Kind) Waypoint {
	return Waypoint{ID: id, Point: geo.NewPoint(lng, lat), Level: level, Kind: kind}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"elevator", KindElevator},
		{"Elevator", KindElevator},
		{"lift", KindElevator},
		{"escalator", KindEscalator},
		{"stairs", KindStairs},
		{"", KindNormal},
		{"door", KindNormal},
		{"poi", KindNormal},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.tag))
		})
	}
}

func TestKindText(t *testing.T) {
	text, err := KindElevator.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "elevator", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("stairs")))
	assert.Equal(t, KindStairs, k)
	assert.True(t, k.Vertical())
	assert.False(t, KindNormal.Vertical())
}

func TestNewStore(t *testing.T) {
	s, err := NewStore([]Waypoint{
		wp("A", 0, 0, 0, KindNormal),
		wp("B", 0, 0.001, 0, KindElevator),
		wp("C", 0, 0.001, 1, KindElevator),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	got, ok := s.Get("B")
	require.True(t, ok)
	assert.Equal(t, KindElevator, got.Kind)
	assert.True(t, s.Contains("C"))
	assert.False(t, s.Contains("Z"))

	ids := make([]string, 0)
	for _, w := range s.All() {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids, "All must keep load order")
	assert.Len(t, s.Elevators(), 2)
	assert.Equal(t, []int{0, 1}, s.Levels())
	assert.Len(t, s.OnLevel(1), 1)
}

func TestNewStore_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		points []Waypoint
		want   error
	}{
		{"duplicate id", []Waypoint{wp("A", 0, 0, 0, KindNormal), wp("A", 1, 1, 0, KindNormal)}, ErrDuplicateWaypoint},
		{"empty id", []Waypoint{wp("", 0, 0, 0, KindNormal)}, ErrMalformedWaypoint},
		{"NaN coordinate", []Waypoint{wp("A", math.NaN(), 0, 0, KindNormal)}, ErrMalformedWaypoint},
		{"latitude out of range", []Waypoint{wp("A", 0, 95, 0, KindNormal)}, ErrMalformedWaypoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.points)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	s, err := NewStore([]Waypoint{wp("A", 0, 0, 0, KindNormal)})
	require.NoError(t, err)

	_, err = s.Lookup("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownWaypoint)

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "missing", lerr.ID)
}

func TestNearest(t *testing.T) {
	s, err := NewStore([]Waypoint{
		wp("A", 0, 0, 0, KindNormal),
		wp("B", 0, 0.001, 0, KindNormal),
		wp("C", 0, 0.001, 1, KindNormal),
		wp("D", 0, 0.002, 1, KindNormal),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query geo.Point
		level int
		want  string
	}{
		{"exact match on ground floor", geo.NewPoint(0, 0.001), 0, "B"},
		{"closest on level 0 is the seed", geo.NewPoint(0, -0.001), 0, "A"},
		{"level filter skips co-located waypoint", geo.NewPoint(0, 0.0012), 1, "C"},
		{"far end of level 1", geo.NewPoint(0, 0.0025), 1, "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Nearest(tt.query, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestNearest_NoCandidateOnLevel(t *testing.T) {
	s, err := NewStore([]Waypoint{
		wp("A", 0, 0, 0, KindNormal),
		wp("B", 0, 0.001, 0, KindNormal),
	})
	require.NoError(t, err)

	_, err = s.Nearest(geo.NewPoint(0, 0), 3)
	assert.ErrorIs(t, err, ErrNoWaypointOnLevel)
	assert.EqualError(t, err, "level 3: no waypoint on requested level")
}

func TestNearest_SeedCloserThanLevelCandidates(t *testing.T) {
	// The seed sits on another level and is closer than every level-2
	// candidate, so nothing replaces it and resolution reports a failure.
	s, err := NewStore([]Waypoint{
		wp("seed", 0, 0, 0, KindNormal),
		wp("far", 0, 0.01, 2, KindNormal),
	})
	require.NoError(t, err)

	_, err = s.Nearest(geo.NewPoint(0, 0), 2)
	assert.ErrorIs(t, err, ErrNoWaypointOnLevel)

	var lookup *LookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, "seed", lookup.Seed)
	assert.Equal(t, 1, lookup.Candidates)
	assert.Contains(t, err.Error(), `seed waypoint "seed" on level 0 is closer than all 1 waypoints on the level`)
}

func TestNearest_SeedShadowsNearbyLevel(t *testing.T) {
	// a level-3 waypoint about 3 m from the query still loses to the seed
	s, err := NewStore([]Waypoint{
		wp("lobby", 0, 0, 0, KindNormal),
		wp("roof", 0.000027, 0, 3, KindNormal),
		wp("plant", 0.0001, 0, 3, KindNormal),
	})
	require.NoError(t, err)

	_, err = s.Nearest(geo.NewPoint(0, 0), 3)
	require.ErrorIs(t, err, ErrNoWaypointOnLevel)
	assert.Contains(t, err.Error(), `seed waypoint "lobby" on level 0 is closer than all 2 waypoints on the level`)
}

func TestNearest_EmptyStore(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)

	_, err = s.Nearest(geo.NewPoint(0, 0), 0)
	assert.ErrorIs(t, err, ErrEmptyStore)
}
