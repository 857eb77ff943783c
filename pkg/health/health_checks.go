package health

import (
	"fmt"

	"github.com/dd0wney/cluso-wayfind/pkg/algorithms"
	"github.com/dd0wney/cluso-wayfind/pkg/graph"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// Building is what the diagnostics inspect. *engine.Engine satisfies it.
type Building interface {
	Store() *waypoint.Store
	Graph() *graph.Graph
	Dangling() []graph.DanglingEdge
}

// NewBuildingChecker registers every building diagnostic
func NewBuildingChecker(b Building) *HealthChecker {
	hc := NewHealthChecker()
	hc.RegisterCheck("waypoints", WaypointsCheck(b.Store()))
	hc.RegisterCheck("dangling_neighbors", DanglingCheck(b.Dangling()))
	hc.RegisterCheck("elevator_links", ElevatorCheck(b.Store(), b.Graph()))
	hc.RegisterCheck("vertical_access", VerticalAccessCheck(b.Store()))
	hc.RegisterCheck("connectivity", ConnectivityCheck(b.Store(), b.Graph()))
	return hc
}

// WaypointsCheck fails when there is nothing to route over
func WaypointsCheck(store *waypoint.Store) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "waypoints",
			Details: map[string]any{"count": store.Len(), "levels": store.Levels()},
		}
		if store.Len() == 0 {
			check.Status = StatusUnhealthy
			check.Message = "Building has no waypoints"
			return check
		}
		check.Status = StatusHealthy
		check.Message = fmt.Sprintf("%d waypoints on %d levels", store.Len(), len(store.Levels()))
		return check
	}
}

// DanglingCheck reports declared neighbors that name no waypoint
func DanglingCheck(dangling []graph.DanglingEdge) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "dangling_neighbors",
			Details: map[string]any{"count": len(dangling)},
		}
		if len(dangling) == 0 {
			check.Status = StatusHealthy
			check.Message = "Every declared neighbor exists"
			return check
		}

		edges := make([]string, len(dangling))
		for i, d := range dangling {
			edges[i] = d.From + " -> " + d.To
		}
		check.Details["edges"] = edges
		check.Status = StatusDegraded
		check.Message = fmt.Sprintf("%d declared neighbors point nowhere", len(dangling))
		return check
	}
}

// ElevatorCheck reports elevators with no link to another level
func ElevatorCheck(store *waypoint.Store, g *graph.Graph) CheckFunc {
	return func() Check {
		elevators := store.Elevators()
		check := Check{
			Name:    "elevator_links",
			Details: map[string]any{"elevators": len(elevators)},
		}

		var unlinked []string
		for _, e := range elevators {
			if !crossesLevel(store, g, e) {
				unlinked = append(unlinked, e.ID)
			}
		}

		if len(unlinked) > 0 {
			check.Details["unlinked"] = unlinked
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d of %d elevators reach no other floor", len(unlinked), len(elevators))
			return check
		}
		check.Status = StatusHealthy
		check.Message = fmt.Sprintf("%d elevators linked", len(elevators))
		return check
	}
}

func crossesLevel(store *waypoint.Store, g *graph.Graph, w waypoint.Waypoint) bool {
	for _, id := range g.Neighbors(w.ID) {
		if n, ok := store.Get(id); ok && n.Level != w.Level {
			return true
		}
	}
	return false
}

// VerticalAccessCheck reports levels without any elevator, escalator or
// stairs waypoint in a multi-level building
func VerticalAccessCheck(store *waypoint.Store) CheckFunc {
	return func() Check {
		check := Check{Name: "vertical_access"}
		levels := store.Levels()
		if len(levels) < 2 {
			check.Status = StatusHealthy
			check.Message = "Single level building"
			return check
		}

		var missing []int
		for _, level := range levels {
			found := false
			for _, w := range store.OnLevel(level) {
				if w.Kind.Vertical() {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, level)
			}
		}

		if len(missing) > 0 {
			check.Details = map[string]any{"levels": missing}
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d levels have no vertical connector", len(missing))
			return check
		}
		check.Status = StatusHealthy
		check.Message = "Every level has a vertical connector"
		return check
	}
}

// ConnectivityCheck measures how much of the building the first waypoint
// reaches over the linked graph
func ConnectivityCheck(store *waypoint.Store, g *graph.Graph) CheckFunc {
	return func() Check {
		check := Check{Name: "connectivity"}
		all := store.All()
		if len(all) == 0 {
			check.Status = StatusHealthy
			check.Message = "Nothing to connect"
			return check
		}

		origin := all[0].ID
		reached := 0
		hops := algorithms.HopDistances(g, origin)
		for _, w := range all {
			if _, ok := hops[w.ID]; ok {
				reached++
			}
		}

		check.Details = map[string]any{
			"origin":      origin,
			"reached":     reached,
			"total":       len(all),
			"unreachable": len(all) - reached,
		}
		if reached < len(all) {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d of %d waypoints unreachable from %s", len(all)-reached, len(all), origin)
			return check
		}
		check.Status = StatusHealthy
		check.Message = fmt.Sprintf("All %d waypoints reachable from %s", len(all), origin)
		return check
	}
}
