// Package instructions synthesizes turn-by-turn navigation steps from
// per-floor route geometry.
package instructions

import (
	"github.com/dd0wney/cluso-wayfind/pkg/geo"
)

// Icon tags the glyph a client shows next to an instruction
type Icon string

const (
	IconNorth     Icon = "north"
	IconNorthEast Icon = "northeast"
	IconEast      Icon = "east"
	IconSouthEast Icon = "southeast"
	IconSouth     Icon = "south"
	IconSouthWest Icon = "southwest"
	IconWest      Icon = "west"
	IconNorthWest Icon = "northwest"

	IconStraight    Icon = "straight"
	IconSlightLeft  Icon = "slight-left"
	IconSlightRight Icon = "slight-right"
	IconLeft        Icon = "turn-left"
	IconRight       Icon = "turn-right"
	IconSharpLeft   Icon = "sharp-left"
	IconSharpRight  Icon = "sharp-right"
	IconUTurn       Icon = "u-turn"

	IconStairsUp   Icon = "stairs-up"
	IconStairsDown Icon = "stairs-down"
	IconArrive     Icon = "arrive"
)

var compassIcons = [...]Icon{
	IconNorth, IconNorthEast, IconEast, IconSouthEast,
	IconSouth, IconSouthWest, IconWest, IconNorthWest,
}

// CompassIcon returns the icon for a compass direction
func CompassIcon(d geo.Direction) Icon {
	if d < 0 || int(d) >= len(compassIcons) {
		return IconNorth
	}
	return compassIcons[d]
}

// Kind classifies an instruction
type Kind int

const (
	KindHead Kind = iota
	KindContinue
	KindTurn
	KindFloorChange
	KindArrive
)

func (k Kind) String() string {
	switch k {
	case KindHead:
		return "head"
	case KindContinue:
		return "continue"
	case KindTurn:
		return "turn"
	case KindFloorChange:
		return "floor-change"
	case KindArrive:
		return "arrive"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Instruction is one navigation step. DistanceMeters is set only on steps
// that cover ground (continue legs and floor changes); Coordinates holds one
// anchor point or the two ends of the step.
type Instruction struct {
	Kind           Kind        `json:"kind"`
	Text           string      `json:"text"`
	Icon           Icon        `json:"icon"`
	Level          int         `json:"level"`
	DistanceMeters *float64    `json:"distance_meters,omitempty"`
	Coordinates    []geo.Point `json:"coordinates"`
}

// Distance returns DistanceMeters or 0 when unset
func (in Instruction) Distance() float64 {
	if in.DistanceMeters == nil {
		return 0
	}
	return *in.DistanceMeters
}

// TotalDistance sums the distance-bearing instructions
func TotalDistance(list []Instruction) float64 {
	total := 0.0
	for _, in := range list {
		total += in.Distance()
	}
	return total
}
