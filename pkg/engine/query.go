package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-wayfind/pkg/feed"
	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// Query names a route endpoint: either a waypoint id, or a coordinate on a
// level that is snapped to the nearest waypoint. The level may be given
// directly or as a floor id resolved through the building's level lookup.
type Query struct {
	WaypointID string     `json:"waypoint_id,omitempty"`
	Point      *geo.Point `json:"point,omitempty"`
	Level      int        `json:"level"`
	FloorID    string     `json:"floor_id,omitempty"`
}

// ByID targets a known waypoint
func ByID(id string) Query {
	return Query{WaypointID: id}
}

// AtPoint snaps a coordinate on a numeric level
func AtPoint(lng, lat float64, level int) Query {
	p := geo.NewPoint(lng, lat)
	return Query{Point: &p, Level: level}
}

// OnFloor snaps a coordinate on the floor with the given id
func OnFloor(lng, lat float64, floorID string) Query {
	p := geo.NewPoint(lng, lat)
	return Query{Point: &p, FloorID: floorID}
}

// Validate checks that exactly one way of naming the endpoint is used
func (q Query) Validate() error {
	switch {
	case q.WaypointID != "" && q.Point != nil:
		return fmt.Errorf("%w: both waypoint id and point given", ErrInvalidQuery)
	case q.WaypointID == "" && q.Point == nil:
		return fmt.Errorf("%w: neither waypoint id nor point given", ErrInvalidQuery)
	case q.Point != nil && !q.Point.Valid():
		return fmt.Errorf("%w: coordinate (%v, %v) out of range", ErrInvalidQuery, q.Point.Lng, q.Point.Lat)
	}
	return nil
}

func (q Query) String() string {
	if q.WaypointID != "" {
		return q.WaypointID
	}
	if q.Point == nil {
		return "<empty>"
	}
	if q.FloorID != "" {
		return fmt.Sprintf("(%.6f, %.6f) on floor %s", q.Point.Lng, q.Point.Lat, q.FloorID)
	}
	return fmt.Sprintf("(%.6f, %.6f) on level %d", q.Point.Lng, q.Point.Lat, q.Level)
}

// resolve maps a query to a waypoint. A floor id takes precedence over the
// numeric level and requires a level lookup.
func resolve(store *waypoint.Store, levels feed.LevelLookup, q Query) (waypoint.Waypoint, error) {
	if err := q.Validate(); err != nil {
		return waypoint.Waypoint{}, err
	}

	if q.WaypointID != "" {
		return store.Lookup(q.WaypointID)
	}

	level := q.Level
	if q.FloorID != "" {
		if levels == nil {
			return waypoint.Waypoint{}, fmt.Errorf("%w: floor %s given without a level lookup", ErrInvalidQuery, q.FloorID)
		}
		lv, err := levels.Level(q.FloorID)
		if err != nil {
			return waypoint.Waypoint{}, err
		}
		level = lv
	}

	return store.Nearest(*q.Point, level)
}

// ParseQuery reads the command-line endpoint forms:
//
//	g1                  waypoint id
//	144.96,-37.81@0     coordinate on level 0
//	144.96,-37.81@L1    coordinate on floor L1
func ParseQuery(s string) (Query, error) {
	s = strings.TrimSpace(s)
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		if err := validation.ValidateWaypointID(s); err != nil {
			return Query{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return ByID(s), nil
	}

	coords, where := s[:at], strings.TrimSpace(s[at+1:])
	lngText, latText, ok := strings.Cut(coords, ",")
	if !ok || where == "" {
		return Query{}, fmt.Errorf("%w: %q is not lng,lat@level", ErrInvalidQuery, s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return Query{}, fmt.Errorf("%w: bad longitude %q", ErrInvalidQuery, lngText)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return Query{}, fmt.Errorf("%w: bad latitude %q", ErrInvalidQuery, latText)
	}

	var q Query
	if level, err := strconv.Atoi(where); err == nil {
		q = AtPoint(lng, lat, level)
	} else {
		q = OnFloor(lng, lat, where)
	}
	return q, q.Validate()
}
