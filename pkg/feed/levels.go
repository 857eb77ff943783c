package feed

import (
	"fmt"
	"sort"
)

// LevelLookup maps floor ids to numeric levels
type LevelLookup map[string]int

// Level resolves a floor id
func (l LevelLookup) Level(floorID string) (int, error) {
	level, ok := l[floorID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFloor, floorID)
	}
	return level, nil
}

// FloorIDs returns the floor ids ordered by level, then id
func (l LevelLookup) FloorIDs() []string {
	ids := make([]string, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if l[ids[i]] != l[ids[j]] {
			return l[ids[i]] < l[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// FloorsOnLevel returns the floor ids assigned to level, sorted
func (l LevelLookup) FloorsOnLevel(level int) []string {
	var ids []string
	for id, lv := range l {
		if lv == level {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
