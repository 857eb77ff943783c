package waypoint

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
)

// Store holds every waypoint of a building keyed by id. Load order is kept
// so that iteration, and therefore nearest-waypoint resolution, is
// deterministic. A Store is read-only after NewStore returns.
type Store struct {
	byID  map[string]Waypoint
	order []string
}

// NewStore validates and indexes the given waypoints. Malformed or
// duplicate entries are rejected here rather than during routing.
func NewStore(points []Waypoint) (*Store, error) {
	s := &Store{
		byID:  make(map[string]Waypoint, len(points)),
		order: make([]string, 0, len(points)),
	}

	for i, wp := range points {
		if err := validation.ValidateWaypointID(wp.ID); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedWaypoint, i, err)
		}
		if !wp.Point.Valid() {
			return nil, fmt.Errorf("%w: %s has invalid coordinate (%v, %v)", ErrMalformedWaypoint, wp.ID, wp.Point.Lng, wp.Point.Lat)
		}
		if _, exists := s.byID[wp.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWaypoint, wp.ID)
		}
		s.byID[wp.ID] = wp
		s.order = append(s.order, wp.ID)
	}

	return s, nil
}

// NewStoreFromRoutePoints indexes the waypoints of a feed's route points
func NewStoreFromRoutePoints(points []RoutePoint) (*Store, error) {
	wps := make([]Waypoint, len(points))
	for i, p := range points {
		wps[i] = p.Waypoint
	}
	return NewStore(wps)
}

// Len returns the number of waypoints
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns the waypoint with the given id
func (s *Store) Get(id string) (Waypoint, bool) {
	wp, ok := s.byID[id]
	return wp, ok
}

// Lookup is Get with an ErrUnknownWaypoint error for absent ids
func (s *Store) Lookup(id string) (Waypoint, error) {
	wp, ok := s.byID[id]
	if !ok {
		return Waypoint{}, &LookupError{ID: id, Cause: ErrUnknownWaypoint}
	}
	return wp, nil
}

// Contains reports whether id is a known waypoint
func (s *Store) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// All returns the waypoints in load order
func (s *Store) All() []Waypoint {
	out := make([]Waypoint, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

// OfKind returns the waypoints of one kind in load order
func (s *Store) OfKind(kind Kind) []Waypoint {
	var out []Waypoint
	for _, id := range s.order {
		if wp := s.byID[id]; wp.Kind == kind {
			out = append(out, wp)
		}
	}
	return out
}

// Elevators returns the elevator waypoints in load order
func (s *Store) Elevators() []Waypoint {
	return s.OfKind(KindElevator)
}

// OnLevel returns the waypoints of one floor level in load order
func (s *Store) OnLevel(level int) []Waypoint {
	var out []Waypoint
	for _, id := range s.order {
		if wp := s.byID[id]; wp.Level == level {
			out = append(out, wp)
		}
	}
	return out
}

// Levels returns the distinct floor levels, ascending
func (s *Store) Levels() []int {
	seen := make(map[int]struct{})
	for _, wp := range s.byID {
		seen[wp.Level] = struct{}{}
	}
	levels := make([]int, 0, len(seen))
	for l := range seen {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}

// Nearest snaps a free-form point to the closest waypoint on level.
//
// Waypoints are scanned in load order. The first waypoint seeds the running
// minimum whatever its level; from the second candidate onward only
// waypoints on level that are strictly closer replace it. If the retained
// waypoint is not on level the resolution fails with ErrNoWaypointOnLevel;
// the LookupError names the seed when level did have candidates.
func (s *Store) Nearest(query geo.Point, level int) (Waypoint, error) {
	if len(s.order) == 0 {
		return Waypoint{}, &LookupError{Level: level, Cause: ErrEmptyStore}
	}

	best := s.byID[s.order[0]]
	bestDist := geo.Haversine(query, best.Point)
	candidates := 0

	for _, id := range s.order[1:] {
		wp := s.byID[id]
		if wp.Level != level {
			continue
		}
		candidates++
		if d := geo.Haversine(query, wp.Point); d < bestDist {
			best = wp
			bestDist = d
		}
	}

	if best.Level != level {
		err := &LookupError{Level: level, Cause: ErrNoWaypointOnLevel}
		if candidates > 0 {
			err.Seed = best.ID
			err.SeedLevel = best.Level
			err.Candidates = candidates
		}
		return Waypoint{}, err
	}
	return best, nil
}
