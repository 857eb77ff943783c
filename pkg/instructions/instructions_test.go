package instructions

import (
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
	"github.com/dd0wney/cluso-wayfind/pkg/route"
)

func seg(level int, coords ...float64) route.Segment {
	s := route.Segment{Level: level}
	for i := 0; i+1 < len(coords); i += 2 {
		s.Points = append(s.Points, geo.NewPoint(coords[i], coords[i+1]))
	}
	return s
}

func kinds(list []Instruction) []Kind {
	out := make([]Kind, len(list))
	for i, in := range list {
		out[i] = in.Kind
	}
	return out
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0.4, "0 meters"},
		{1, "1 meter"},
		{5, "5 meters"},
		{9.4, "9 meters"},
		{10, "10 meters"},
		{456, "460 meters"},
		{994, "990 meters"},
		{1000, "1.0 kilometers"},
		{1500, "1.5 kilometers"},
		{12345, "12.3 kilometers"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDistance(tt.meters))
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "460 meters, 6 minutes", Summary(456, 6))
	assert.Equal(t, "5 meters, less than a minute", Summary(5, 0))
	assert.Equal(t, "80 meters, 1 minute", Summary(80.4672, 1))
}

func TestClassifyTurn(t *testing.T) {
	tests := []struct {
		angle     float64
		want      Turn
		announced bool
	}{
		{0, TurnStraight, false},
		{9.9, TurnStraight, false},
		{-9.9, TurnStraight, false},
		{10, TurnSlightRight, false},
		{12, TurnSlightRight, false},
		{-12, TurnSlightLeft, false},
		{30, TurnSlightRight, false},
		{31, TurnSlightRight, true},
		{-44.9, TurnSlightLeft, true},
		{45, TurnRight, true},
		{95, TurnRight, true},
		{-95, TurnLeft, true},
		{134.9, TurnRight, true},
		{135, TurnSharpRight, true},
		{-170, TurnSharpLeft, true},
		{179.9, TurnSharpRight, true},
		{-180, TurnUTurn, true},
		{180, TurnUTurn, true},
	}

	for _, tt := range tests {
		got := ClassifyTurn(tt.angle)
		assert.Equal(t, tt.want, got, "ClassifyTurn(%v)", tt.angle)
		assert.Equal(t, tt.announced, Announced(tt.angle), "Announced(%v)", tt.angle)
	}
}

func TestGenerate_Empty(t *testing.T) {
	assert.Nil(t, Generate(nil))
	assert.Nil(t, Generate([]route.Segment{{Level: 0}}))
	assert.Nil(t, FromRoute(nil))
}

func TestGenerate_SinglePoint(t *testing.T) {
	list := Generate([]route.Segment{seg(2, 0, 0)})

	require.Len(t, list, 2)
	assert.Equal(t, KindHead, list[0].Kind)
	assert.Equal(t, "Head north on", list[0].Text)
	assert.Equal(t, KindArrive, list[1].Kind)
	assert.Equal(t, 2, list[1].Level)
}

func TestGenerate_StraightCorridor(t *testing.T) {
	list := Generate([]route.Segment{seg(0, 0, 0, 0, 0.001, 0, 0.002)})

	assert.Equal(t, []Kind{KindHead, KindContinue, KindArrive}, kinds(list))
	assert.Equal(t, "Head north on", list[0].Text)
	assert.Equal(t, IconNorth, list[0].Icon)
	assert.Equal(t, "Continue 220 meters", list[1].Text)
	assert.Equal(t, IconNorth, list[1].Icon)
	assert.Equal(t, "You have reached your destination", list[2].Text)
	assert.Equal(t, []geo.Point{geo.NewPoint(0, 0.002)}, list[2].Coordinates)
}

func TestGenerate_HeadDirection(t *testing.T) {
	list := Generate([]route.Segment{seg(0, 0, 0, 0.001, 0)})
	assert.Equal(t, "Head east on", list[0].Text)
	assert.Equal(t, IconEast, list[0].Icon)

	list = Generate([]route.Segment{seg(0, 0, 0, -0.001, -0.001)})
	assert.Equal(t, "Head southwest on", list[0].Text)
}

func TestGenerate_HeadFromElevatorStart(t *testing.T) {
	segments := []route.Segment{
		seg(0, 0, 0),
		seg(1, 0, 0, 0.001, 0),
	}

	list := Generate(segments)

	assert.Equal(t, []Kind{KindHead, KindFloorChange, KindContinue, KindArrive}, kinds(list))
	assert.Equal(t, "Head east on", list[0].Text)
	assert.Equal(t, IconEast, list[0].Icon)
	assert.Equal(t, 0, list[0].Level)
	assert.Equal(t, []geo.Point{geo.NewPoint(0, 0), geo.NewPoint(0.001, 0)}, list[0].Coordinates)
	assert.Equal(t, IconEast, list[2].Icon)
}

func TestGenerate_HeadSkipsRepeatedStartPoint(t *testing.T) {
	list := Generate([]route.Segment{seg(0, 0, 0, 0, 0, 0, -0.001)})

	assert.Equal(t, "Head south on", list[0].Text)
	assert.Equal(t, IconSouth, list[0].Icon)
}

func TestGenerate_SlightBendIsFolded(t *testing.T) {
	// second leg bends about 12 degrees right of north
	dx := 0.001 * math.Tan(12*math.Pi/180)
	list := Generate([]route.Segment{seg(0, 0, 0, 0, 0.001, dx, 0.002)})

	assert.Equal(t, []Kind{KindHead, KindContinue, KindArrive}, kinds(list))
	for _, in := range list {
		assert.NotEqual(t, KindTurn, in.Kind)
	}
}

func TestGenerate_RightAngleTurn(t *testing.T) {
	// north, then roughly 95 degrees to the right
	dy := -0.001 * math.Tan(5*math.Pi/180)
	list := Generate([]route.Segment{seg(0, 0, 0, 0, 0.001, 0.001, 0.001+dy)})

	require.Equal(t, []Kind{KindHead, KindContinue, KindTurn, KindContinue, KindArrive}, kinds(list))
	assert.Equal(t, "Turn right", list[2].Text)
	assert.Equal(t, IconRight, list[2].Icon)
	assert.Equal(t, []geo.Point{geo.NewPoint(0, 0.001)}, list[2].Coordinates)
	assert.Equal(t, IconEast, list[3].Icon)

	mirrored := Generate([]route.Segment{seg(0, 0, 0, 0, 0.001, -0.001, 0.001+dy)})
	assert.Equal(t, "Turn left", mirrored[2].Text)
}

func TestGenerate_UTurn(t *testing.T) {
	list := Generate([]route.Segment{seg(0, 0, 0, 0, 0.001, 0, 0.0005)})

	require.Equal(t, []Kind{KindHead, KindContinue, KindTurn, KindContinue, KindArrive}, kinds(list))
	assert.Equal(t, "Make a U-turn", list[2].Text)
}

func TestGenerate_FloorChangeScenario(t *testing.T) {
	// A(0,0,L0) -> B(0,0.001,L0) -> C(0,0.001,L1)
	segments := []route.Segment{
		seg(0, 0, 0, 0, 0.001),
		seg(1, 0, 0.001),
	}
	list := Generate(segments)

	require.Equal(t, []Kind{KindHead, KindContinue, KindFloorChange, KindArrive}, kinds(list))
	assert.Equal(t, "Continue 110 meters", list[1].Text)
	assert.Equal(t, "Take stairs or elevator up to floor 1", list[2].Text)
	assert.Equal(t, IconStairsUp, list[2].Icon)
	assert.Equal(t, 1, list[2].Level)
	require.NotNil(t, list[2].DistanceMeters)
	assert.InDelta(t, 0, *list[2].DistanceMeters, 1e-9)
	assert.Equal(t, 1, list[3].Level)
	assert.Equal(t, []int{0, 1}, LevelsVisited(list))
}

func TestGenerate_FloorChangeDown(t *testing.T) {
	segments := []route.Segment{
		seg(2, 0, 0, 0, 0.001),
		seg(-1, 0, 0.001, 0.001, 0.001),
	}
	list := Generate(segments)

	var change *Instruction
	for i := range list {
		if list[i].Kind == KindFloorChange {
			change = &list[i]
		}
	}
	require.NotNil(t, change)
	assert.Equal(t, "Take stairs or elevator down to floor -1", change.Text)
	assert.Equal(t, IconStairsDown, change.Icon)
}

func TestGenerate_FloorChangeResetsHeading(t *testing.T) {
	// walking north, then east on the next floor: no turn is announced
	// across the floor change
	segments := []route.Segment{
		seg(0, 0, 0, 0, 0.001),
		seg(1, 0, 0.001, 0.001, 0.001),
	}
	list := Generate(segments)

	assert.Equal(t, []Kind{KindHead, KindContinue, KindFloorChange, KindContinue, KindArrive}, kinds(list))
}

// TestGenerateProperties checks ordering and distance invariants over random
// multi-floor polylines
func TestGenerateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// each code packs a grid offset in [-3,3]x[-3,3] and a level in [0,2]
	build := func(codes []int) []route.Segment {
		var segments []route.Segment
		x, y := 0.0, 0.0
		for i, c := range codes {
			dx, dy, level := c%7-3, (c/7)%7-3, c/49
			x += float64(dx) * 0.0001
			y += float64(dy) * 0.0001
			if i == 0 || segments[len(segments)-1].Level != level {
				segments = append(segments, route.Segment{Level: level})
			}
			last := &segments[len(segments)-1]
			last.Points = append(last.Points, geo.NewPoint(x, y))
		}
		return segments
	}

	genCodes := gen.SliceOf(gen.IntRange(0, 7*7*3-1)).SuchThat(func(v []int) bool {
		return len(v) > 0
	})

	flatten := func(segments []route.Segment) []geo.Point {
		var out []geo.Point
		for _, s := range segments {
			out = append(out, s.Points...)
		}
		return out
	}

	properties.Property("first is head and last is arrival", prop.ForAll(
		func(codes []int) bool {
			list := Generate(build(codes))
			return len(list) >= 2 &&
				list[0].Kind == KindHead &&
				strings.HasPrefix(list[0].Text, "Head ") &&
				list[len(list)-1].Kind == KindArrive
		},
		genCodes,
	))

	properties.Property("instruction distances sum to the route length", prop.ForAll(
		func(codes []int) bool {
			segments := build(codes)
			want := geo.PathLength(flatten(segments))
			return math.Abs(TotalDistance(Generate(segments))-want) < 1e-6
		},
		genCodes,
	))

	properties.Property("one floor change per level change", prop.ForAll(
		func(codes []int) bool {
			segments := build(codes)
			changes := 0
			for _, in := range Generate(segments) {
				if in.Kind == KindFloorChange {
					changes++
				}
			}
			return changes == len(segments)-1
		},
		genCodes,
	))

	properties.TestingRun(t)
}
