// Package snapshot persists a finalized building (waypoints plus the linked
// connectivity graph) so it can be reloaded without re-reading the feed or
// re-running elevator linking.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-wayfind/pkg/graph"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

var (
	ErrBadMagic           = errors.New("not a wayfind snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrCorrupt            = errors.New("corrupt snapshot")
)

// Snapshot is the persisted state of one building load
type Snapshot struct {
	Building      string              `json:"building"`
	CreatedAt     time.Time           `json:"created_at"`
	Levels        map[string]int      `json:"levels"`
	Waypoints     []waypoint.Waypoint `json:"waypoints"`
	Adjacency     map[string][]string `json:"adjacency"`
	ElevatorLinks int                 `json:"elevator_links"`
}

// New captures a finalized store and graph
func New(building string, levels map[string]int, store *waypoint.Store, g *graph.Graph, elevatorLinks int) *Snapshot {
	lv := make(map[string]int, len(levels))
	for k, v := range levels {
		lv[k] = v
	}
	return &Snapshot{
		Building:      building,
		CreatedAt:     time.Now().UTC(),
		Levels:        lv,
		Waypoints:     store.All(),
		Adjacency:     g.Adjacency(),
		ElevatorLinks: elevatorLinks,
	}
}

// Store rebuilds the waypoint store, re-validating every entry
func (s *Snapshot) Store() (*waypoint.Store, error) {
	store, err := waypoint.NewStore(s.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return store, nil
}

// Graph rebuilds the connectivity graph
func (s *Snapshot) Graph() *graph.Graph {
	return graph.FromAdjacency(s.Adjacency)
}
