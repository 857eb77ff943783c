package waypoint

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownWaypoint   = errors.New("unknown waypoint")
	ErrDuplicateWaypoint = errors.New("duplicate waypoint id")
	ErrMalformedWaypoint = errors.New("malformed waypoint")
	ErrNoWaypointOnLevel = errors.New("no waypoint on requested level")
	ErrEmptyStore        = errors.New("waypoint store is empty")
)

// LookupError reports a failed resolution of a waypoint id or query point.
type LookupError struct {
	ID    string // waypoint id, if the lookup was by id
	Level int
	Cause error

	// Set when the level has waypoints but the off-level seed of a
	// nearest search was closer than all of them.
	Seed       string
	SeedLevel  int
	Candidates int
}

func (e *LookupError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("waypoint %q: %v", e.ID, e.Cause)
	}
	if e.Seed != "" {
		return fmt.Sprintf("level %d: %v: seed waypoint %q on level %d is closer than all %d waypoints on the level",
			e.Level, e.Cause, e.Seed, e.SeedLevel, e.Candidates)
	}
	return fmt.Sprintf("level %d: %v", e.Level, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
