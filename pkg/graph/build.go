package graph

import (
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// DanglingEdge is a declared neighbor that names no known waypoint
type DanglingEdge struct {
	From string
	To   string
}

// BuildStats summarises graph construction from a feed
type BuildStats struct {
	Vertices int
	Edges    int
	Dangling []DanglingEdge
}

// Build creates the connectivity graph from route points, adding one
// directed edge per declared neighbor in declaration order. Neighbors that
// do not name a route point are skipped and reported in BuildStats.
func Build(points []waypoint.RoutePoint) (*Graph, BuildStats) {
	known := make(map[string]struct{}, len(points))
	for _, p := range points {
		known[p.ID] = struct{}{}
	}

	g := New()
	var stats BuildStats

	for _, p := range points {
		for _, n := range p.Neighbors {
			if _, ok := known[n]; !ok {
				stats.Dangling = append(stats.Dangling, DanglingEdge{From: p.ID, To: n})
				continue
			}
			g.AddEdge(p.ID, n)
		}
	}

	stats.Vertices = g.Len()
	stats.Edges = g.EdgeCount()
	return g, stats
}
