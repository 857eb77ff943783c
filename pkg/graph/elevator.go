package graph

import (
	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// ElevatorLinkThresholdMeters is the exclusive distance under which two
// elevator waypoints are considered the same shaft.
const ElevatorLinkThresholdMeters = 10.0

// LinkElevators adds a directed edge e -> t for every ordered pair of
// distinct elevator waypoints closer than ElevatorLinkThresholdMeters.
// Both orders of a pair are checked independently. Waypoints of any other
// kind are ignored. It returns the number of edges added.
//
// This is the one-time finalization step of a building load; the graph is
// read-only afterwards.
func LinkElevators(g *Graph, elevators []waypoint.Waypoint) int {
	added := 0
	for _, e := range elevators {
		if e.Kind != waypoint.KindElevator {
			continue
		}
		for _, t := range elevators {
			if t.Kind != waypoint.KindElevator || e.ID == t.ID {
				continue
			}
			if geo.Haversine(e.Point, t.Point) < ElevatorLinkThresholdMeters {
				g.AddEdge(e.ID, t.ID)
				added++
			}
		}
	}
	return added
}
