package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// metersPerDegreeLat converts a meridian offset in meters to degrees at the equator
const metersPerDegreeLat = geo.EarthRadiusMeters * math.Pi / 180

func routePoint(id string, lat float64, level int, kind waypoint.Kind, neighbors ...string) waypoint.RoutePoint {
	return waypoint.RoutePoint{
		Waypoint: waypoint.Waypoint{
			ID:    id,
			Point: geo.NewPoint(0, lat),
			Level: level,
			Kind:  kind,
		},
		Neighbors: neighbors,
	}
}

func TestGraph_AddEdgeAndNeighbors(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("B", "C")

	assert.Equal(t, []string{"B", "C"}, g.Neighbors("A"), "neighbors keep insertion order")
	assert.Equal(t, []string{"C"}, g.Neighbors("B"))
	assert.Empty(t, g.Neighbors("C"), "vertex without outgoing edges has no neighbors")
	assert.Empty(t, g.Neighbors("missing"), "absent vertex has no neighbors")

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasEdge("A", "C"))
	assert.False(t, g.HasEdge("C", "A"), "edges are directed")
	assert.Equal(t, []string{"A", "B"}, g.Vertices())
}

func TestGraph_DuplicateEdgesAllowed(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "B")

	assert.Equal(t, []string{"B", "B"}, g.Neighbors("A"))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestGraph_AdjacencyRoundTrip(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddEdge("B", "C")

	adj := g.Adjacency()
	adj["A"][0] = "mutated"
	assert.Equal(t, []string{"B"}, g.Neighbors("A"), "Adjacency must return a copy")

	rebuilt := FromAdjacency(g.Adjacency())
	assert.Equal(t, g.EdgeCount(), rebuilt.EdgeCount())
	assert.Equal(t, g.Neighbors("B"), rebuilt.Neighbors("B"))

	empty := FromAdjacency(map[string][]string{"X": nil})
	assert.Equal(t, 0, empty.Len(), "empty lists must not create entries")
}

func TestBuild(t *testing.T) {
	points := []waypoint.RoutePoint{
		routePoint("A", 0, 0, waypoint.KindNormal, "B"),
		routePoint("B", 0.001, 0, waypoint.KindNormal, "A", "C", "ghost"),
		routePoint("C", 0.002, 0, waypoint.KindNormal),
	}

	g, stats := Build(points)

	assert.Equal(t, []string{"B"}, g.Neighbors("A"))
	assert.Equal(t, []string{"A", "C"}, g.Neighbors("B"))
	assert.Empty(t, g.Neighbors("C"))

	assert.Equal(t, 2, stats.Vertices)
	assert.Equal(t, 3, stats.Edges)
	require.Len(t, stats.Dangling, 1)
	assert.Equal(t, DanglingEdge{From: "B", To: "ghost"}, stats.Dangling[0])
}

func TestLinkElevators_Threshold(t *testing.T) {
	tests := []struct {
		name       string
		offsetM    float64
		wantLinked bool
	}{
		{"co-located shaft", 0, true},
		{"just inside threshold", 9.99, true},
		{"just outside threshold", 10.01, false},
		{"separate shafts", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e1 := routePoint("E1", 0, 0, waypoint.KindElevator).Waypoint
			e2 := routePoint("E2", tt.offsetM/metersPerDegreeLat, 1, waypoint.KindElevator).Waypoint

			g := New()
			added := LinkElevators(g, []waypoint.Waypoint{e1, e2})

			assert.Equal(t, tt.wantLinked, g.HasEdge("E1", "E2"))
			assert.Equal(t, tt.wantLinked, g.HasEdge("E2", "E1"), "pair loop runs in both orders")
			if tt.wantLinked {
				assert.Equal(t, 2, added)
			} else {
				assert.Equal(t, 0, added)
			}
		})
	}
}

func TestLinkElevators_NoSelfEdges(t *testing.T) {
	e := routePoint("E", 0, 0, waypoint.KindElevator).Waypoint

	g := New()
	added := LinkElevators(g, []waypoint.Waypoint{e})

	assert.Equal(t, 0, added)
	assert.False(t, g.HasEdge("E", "E"))
}

func TestLinkElevators_IgnoresOtherKinds(t *testing.T) {
	esc1 := routePoint("S1", 0, 0, waypoint.KindEscalator).Waypoint
	esc2 := routePoint("S2", 0, 1, waypoint.KindEscalator).Waypoint
	stairs := routePoint("ST", 0, 2, waypoint.KindStairs).Waypoint
	elev := routePoint("E", 0, 0, waypoint.KindElevator).Waypoint

	g := New()
	added := LinkElevators(g, []waypoint.Waypoint{esc1, esc2, stairs, elev})

	assert.Equal(t, 0, added, "escalators and stairs are not auto-linked")
	assert.Equal(t, 0, g.EdgeCount())
}

func TestLinkElevators_ThreeFloorShaft(t *testing.T) {
	var shaft []waypoint.Waypoint
	for level, id := range []string{"E0", "E1", "E2"} {
		shaft = append(shaft, routePoint(id, 0, level, waypoint.KindElevator).Waypoint)
	}

	g := New()
	added := LinkElevators(g, shaft)

	assert.Equal(t, 6, added, "every ordered pair of distinct elevators is linked")
	for _, u := range []string{"E0", "E1", "E2"} {
		assert.Len(t, g.Neighbors(u), 2)
	}
}

func TestLinkElevators_MatchesHaversine(t *testing.T) {
	offsets := []float64{1, 5, 9.5, 9.9999, 10.0001, 11, 30}
	for _, m := range offsets {
		a := routePoint("A", 0, 0, waypoint.KindElevator).Waypoint
		b := routePoint("B", m/metersPerDegreeLat, 1, waypoint.KindElevator).Waypoint

		g := New()
		LinkElevators(g, []waypoint.Waypoint{a, b})

		d := geo.Haversine(a.Point, b.Point)
		assert.Equal(t, d < ElevatorLinkThresholdMeters, g.HasEdge("A", "B"), "offset %vm (haversine %v)", m, d)
	}
}
