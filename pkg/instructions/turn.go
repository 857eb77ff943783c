package instructions

import "math"

// TurnThresholdDegrees is the heading change above which a turn is announced.
// Smaller changes are folded into the current leg.
const TurnThresholdDegrees = 30.0

// Turn is the classification of a signed heading change
type Turn int

const (
	TurnStraight Turn = iota
	TurnSlightLeft
	TurnSlightRight
	TurnLeft
	TurnRight
	TurnSharpLeft
	TurnSharpRight
	TurnUTurn
)

var turnText = map[Turn]string{
	TurnStraight:    "Go straight",
	TurnSlightLeft:  "Slight left",
	TurnSlightRight: "Slight right",
	TurnLeft:        "Turn left",
	TurnRight:       "Turn right",
	TurnSharpLeft:   "Sharp left",
	TurnSharpRight:  "Sharp right",
	TurnUTurn:       "Make a U-turn",
}

var turnIcons = map[Turn]Icon{
	TurnStraight:    IconStraight,
	TurnSlightLeft:  IconSlightLeft,
	TurnSlightRight: IconSlightRight,
	TurnLeft:        IconLeft,
	TurnRight:       IconRight,
	TurnSharpLeft:   IconSharpLeft,
	TurnSharpRight:  IconSharpRight,
	TurnUTurn:       IconUTurn,
}

func (t Turn) String() string {
	if s, ok := turnText[t]; ok {
		return s
	}
	return "unknown"
}

// Icon returns the glyph for the turn
func (t Turn) Icon() Icon {
	return turnIcons[t]
}

// ClassifyTurn maps a heading change in degrees, normalised to [-180, 180),
// to a turn. Positive angles turn right.
//
//	|a| < 10         straight
//	10 <= |a| < 45   slight
//	45 <= |a| < 135  left/right
//	135 <= |a| < 180 sharp
//	|a| >= 180       u-turn
func ClassifyTurn(angle float64) Turn {
	abs := math.Abs(angle)
	right := angle > 0

	switch {
	case abs < 10:
		return TurnStraight
	case abs < 45:
		if right {
			return TurnSlightRight
		}
		return TurnSlightLeft
	case abs < 135:
		if right {
			return TurnRight
		}
		return TurnLeft
	case abs < 180:
		if right {
			return TurnSharpRight
		}
		return TurnSharpLeft
	default:
		return TurnUTurn
	}
}

// Announced reports whether a heading change is large enough to emit a turn
func Announced(angle float64) bool {
	return math.Abs(angle) > TurnThresholdDegrees
}
