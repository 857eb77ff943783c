package geo

import "math"

// Direction is one of the eight compass points.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{
	North:     "north",
	NorthEast: "northeast",
	East:      "east",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	West:      "west",
	NorthWest: "northwest",
}

var directionAbbrev = [...]string{
	North:     "N",
	NorthEast: "NE",
	East:      "E",
	SouthEast: "SE",
	South:     "S",
	SouthWest: "SW",
	West:      "W",
	NorthWest: "NW",
}

// String returns the lower-case compass name, e.g. "northeast"
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "unknown"
	}
	return directionNames[d]
}

// Abbrev returns the short compass label, e.g. "NE"
func (d Direction) Abbrev() string {
	if d < North || d > NorthWest {
		return "?"
	}
	return directionAbbrev[d]
}

// CardinalDirection snaps a bearing in degrees to the nearest of the eight
// compass points using round(bearing/45) mod 8.
func CardinalDirection(bearing float64) Direction {
	idx := int(math.Round(bearing/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return Direction(idx)
}
