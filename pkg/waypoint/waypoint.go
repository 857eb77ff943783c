// Package waypoint holds the indoor route network's points and the store that
// owns them for the lifetime of a building load.
package waypoint

import (
	"strings"

	"github.com/dd0wney/cluso-wayfind/pkg/geo"
)

// Kind is the graph-relevant classification of a waypoint.
type Kind int

const (
	KindNormal Kind = iota
	KindElevator
	KindEscalator
	KindStairs
)

// String returns the feed tag for the kind
func (k Kind) String() string {
	switch k {
	case KindElevator:
		return "elevator"
	case KindEscalator:
		return "escalator"
	case KindStairs:
		return "stairs"
	default:
		return "normal"
	}
}

// ParseKind maps a feed kind tag to a Kind. Tags that only matter for
// rendering (doors, POIs, ...) are treated as KindNormal.
func ParseKind(tag string) Kind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "elevator", "lift":
		return KindElevator
	case "escalator":
		return KindEscalator
	case "stairs", "stair", "staircase":
		return KindStairs
	default:
		return KindNormal
	}
}

// Vertical reports whether the kind connects floors
func (k Kind) Vertical() bool {
	return k != KindNormal
}

// Waypoint is a single addressable point of the route network.
// Waypoints are immutable once loaded.
type Waypoint struct {
	ID    string    `json:"id"`
	Point geo.Point `json:"point"`
	Level int       `json:"level"`
	Kind  Kind      `json:"kind"`
}

// RoutePoint is a waypoint together with the neighbor ids declared for it
// by the building feed.
type RoutePoint struct {
	Waypoint
	Neighbors []string `json:"neighbors,omitempty"`
}

// MarshalText encodes the kind as its feed tag
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a feed tag; unknown tags become KindNormal
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}
