package instructions

import (
	"fmt"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/route"
)

const arrivalText = "You have reached your destination"

// generator carries the walk state across segments
type generator struct {
	out []Instruction

	prevBearing    float64
	hasPrevBearing bool

	// current leg since the last turn, start or floor change
	legStart  geo.Point
	legEnd    geo.Point
	legIcon   Icon
	legLevel  int
	legMeters float64
	legSteps  int
}

// Generate walks the segments in path order and emits the instruction list:
// a head instruction first, continue legs closed by turns above the
// announce threshold, a floor change between segments on different levels
// and a final arrival. Distances on continue and floor-change steps sum to
// the length of the route. Segments without points are skipped; no points
// at all yields no instructions.
func Generate(segments []route.Segment) []Instruction {
	segments = nonEmpty(segments)
	if len(segments) == 0 {
		return nil
	}

	g := &generator{}
	g.head(segments)

	for i, seg := range segments {
		points := seg.Points
		if i > 0 {
			prev := segments[i-1]
			boundary := prev.Points[len(prev.Points)-1]
			if prev.Level != seg.Level {
				g.closeLeg()
				g.floorChange(prev.Level, seg.Level, boundary, seg.Points[0])
				g.hasPrevBearing = false
				g.startLeg(seg.Points[0], seg.Level)
			} else {
				// same-level neighbors walk across the boundary
				points = append([]geo.Point{boundary}, points...)
			}
		} else {
			g.startLeg(points[0], seg.Level)
		}

		for j := 1; j < len(points); j++ {
			g.step(points[j-1], points[j], seg.Level)
		}
	}

	last := segments[len(segments)-1]
	g.closeLeg()
	g.out = append(g.out, Instruction{
		Kind:        KindArrive,
		Text:        arrivalText,
		Icon:        IconArrive,
		Level:       last.Level,
		Coordinates: []geo.Point{last.Points[len(last.Points)-1]},
	})

	return g.out
}

func nonEmpty(segments []route.Segment) []route.Segment {
	out := make([]route.Segment, 0, len(segments))
	for _, s := range segments {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// head emits the start instruction. The bearing comes from the first step
// of nonzero length, so a route that starts inside a shaft still faces the
// way the walk actually leaves it.
func (g *generator) head(segments []route.Segment) {
	first := segments[0].Points[0]
	coords := []geo.Point{first}
	bearing := 0.0

	if a, b, ok := firstStep(segments); ok {
		bearing = geo.Bearing(a, b)
		coords = append(coords, b)
	}

	dir := geo.CardinalDirection(bearing)
	g.out = append(g.out, Instruction{
		Kind:        KindHead,
		Text:        fmt.Sprintf("Head %s on", dir),
		Icon:        CompassIcon(dir),
		Level:       segments[0].Level,
		Coordinates: coords,
	})
}

// firstStep returns the first consecutive pair of route points that are
// apart, crossing segment boundaries.
func firstStep(segments []route.Segment) (geo.Point, geo.Point, bool) {
	prev := segments[0].Points[0]
	for _, seg := range segments {
		for _, p := range seg.Points {
			if geo.Haversine(prev, p) > 0 {
				return prev, p, true
			}
			prev = p
		}
	}
	return geo.Point{}, geo.Point{}, false
}

func (g *generator) startLeg(at geo.Point, level int) {
	g.legStart = at
	g.legEnd = at
	g.legLevel = level
	g.legMeters = 0
	g.legSteps = 0
}

// step advances one coordinate pair, announcing a turn when the heading
// change exceeds the threshold.
func (g *generator) step(a, b geo.Point, level int) {
	d := geo.Haversine(a, b)
	if d == 0 {
		return
	}
	bearing := geo.Bearing(a, b)

	if g.hasPrevBearing {
		angle := geo.NormalizeAngle(bearing - g.prevBearing)
		if Announced(angle) {
			g.closeLeg()
			turn := ClassifyTurn(angle)
			g.out = append(g.out, Instruction{
				Kind:        KindTurn,
				Text:        turn.String(),
				Icon:        turn.Icon(),
				Level:       level,
				Coordinates: []geo.Point{a},
			})
			g.startLeg(a, level)
		}
	}

	if g.legSteps == 0 {
		g.legIcon = CompassIcon(geo.CardinalDirection(bearing))
	}
	g.legMeters += d
	g.legEnd = b
	g.legSteps++

	g.prevBearing = bearing
	g.hasPrevBearing = true
}

// closeLeg emits the accumulated continue instruction, if any
func (g *generator) closeLeg() {
	if g.legSteps == 0 {
		return
	}
	meters := g.legMeters
	g.out = append(g.out, Instruction{
		Kind:           KindContinue,
		Text:           "Continue " + FormatDistance(meters),
		Icon:           g.legIcon,
		Level:          g.legLevel,
		DistanceMeters: &meters,
		Coordinates:    []geo.Point{g.legStart, g.legEnd},
	})
	g.legSteps = 0
	g.legMeters = 0
}

func (g *generator) floorChange(from, to int, exit, entry geo.Point) {
	direction, icon := "up", IconStairsUp
	if to < from {
		direction, icon = "down", IconStairsDown
	}
	meters := geo.Haversine(exit, entry)
	g.out = append(g.out, Instruction{
		Kind:           KindFloorChange,
		Text:           fmt.Sprintf("Take stairs or elevator %s to floor %d", direction, to),
		Icon:           icon,
		Level:          to,
		DistanceMeters: &meters,
		Coordinates:    []geo.Point{exit, entry},
	})
}

// FromRoute generates instructions for a segmented route
func FromRoute(r *route.Route) []Instruction {
	if r.Empty() {
		return nil
	}
	return Generate(r.Segments)
}

// LevelsVisited lists the distinct levels named by floor changes, in order,
// starting with the level of the first instruction.
func LevelsVisited(list []Instruction) []int {
	if len(list) == 0 {
		return nil
	}
	levels := []int{list[0].Level}
	for _, in := range list {
		if in.Kind == KindFloorChange && in.Level != levels[len(levels)-1] {
			levels = append(levels, in.Level)
		}
	}
	return levels
}
