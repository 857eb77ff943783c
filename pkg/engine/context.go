package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-wayfind/pkg/instructions"
	"github.com/dd0wney/cluso-wayfind/pkg/route"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// RouteContext carries one routing request and its result. It is passed
// into Engine.Route and returned updated; nothing about a request lives in
// the engine itself.
type RouteContext struct {
	RequestID uuid.UUID `json:"request_id"`
	Source    Query     `json:"source"`
	Target    Query     `json:"target"`

	// SelectedLevel is the floor the caller is viewing. Routing sets it to
	// the level of the first segment.
	SelectedLevel int `json:"selected_level"`

	SourceWaypoint *waypoint.Waypoint         `json:"source_waypoint,omitempty"`
	TargetWaypoint *waypoint.Waypoint         `json:"target_waypoint,omitempty"`
	Route          *route.Route               `json:"route,omitempty"`
	Instructions   []instructions.Instruction `json:"instructions,omitempty"`
	Elapsed        time.Duration              `json:"elapsed"`
}

// NewRouteContext starts a request with a fresh id
func NewRouteContext(source, target Query) RouteContext {
	return RouteContext{
		RequestID: uuid.New(),
		Source:    source,
		Target:    target,
	}
}

// Found reports whether the context holds a non-empty route
func (rc RouteContext) Found() bool {
	return !rc.Route.Empty()
}

// SegmentsOnLevel returns the route segments drawn on level
func (rc RouteContext) SegmentsOnLevel(level int) []route.Segment {
	if rc.Route == nil {
		return nil
	}
	return route.SegmentsOnLevel(rc.Route.Segments, level)
}

// SelectedSegments returns the segments on the selected level
func (rc RouteContext) SelectedSegments() []route.Segment {
	return rc.SegmentsOnLevel(rc.SelectedLevel)
}

// InstructionsOnLevel returns the instructions anchored on level
func (rc RouteContext) InstructionsOnLevel(level int) []instructions.Instruction {
	var out []instructions.Instruction
	for _, in := range rc.Instructions {
		if in.Level == level {
			out = append(out, in)
		}
	}
	return out
}

// WithSelectedLevel returns a copy viewing another floor
func (rc RouteContext) WithSelectedLevel(level int) RouteContext {
	rc.SelectedLevel = level
	return rc
}

// Clear drops the result and keeps the request
func (rc RouteContext) Clear() RouteContext {
	rc.SourceWaypoint = nil
	rc.TargetWaypoint = nil
	rc.Route = nil
	rc.Instructions = nil
	rc.Elapsed = 0
	return rc
}
