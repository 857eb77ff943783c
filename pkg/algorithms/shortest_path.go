package algorithms

import (
	"github.com/dd0wney/cluso-wayfind/pkg/graph"
)

// ShortestPath finds a fewest-hop path from sourceID to targetID using
// breadth-first search. Edge geometry is ignored: among paths with the same
// hop count the first discovered wins, which depends on neighbor insertion
// order.
//
// The result reads source -> ... -> target. It is empty when source equals
// target and when target is unreachable; callers must treat an empty result
// for distinct endpoints as a routing failure.
func ShortestPath(g *graph.Graph, sourceID, targetID string) []string {
	if sourceID == targetID {
		return nil
	}

	queue := []string{sourceID}
	visited := map[string]struct{}{sourceID: {}}
	parent := make(map[string]string)

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		for _, neighborID := range g.Neighbors(currentID) {
			if _, seen := visited[neighborID]; seen {
				continue
			}
			visited[neighborID] = struct{}{}
			parent[neighborID] = currentID

			if neighborID == targetID {
				return reconstructPath(parent, sourceID, targetID)
			}
			queue = append(queue, neighborID)
		}
	}

	return nil
}

// reconstructPath follows predecessors from target back to source and
// reverses the result.
func reconstructPath(parent map[string]string, sourceID, targetID string) []string {
	path := []string{targetID}
	for node := targetID; node != sourceID; {
		node = parent[node]
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// HopDistances returns the BFS hop count from sourceID to every vertex
// reachable from it, source included at distance 0.
func HopDistances(g *graph.Graph, sourceID string) map[string]int {
	distances := map[string]int{sourceID: 0}
	queue := []string{sourceID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		for _, neighborID := range g.Neighbors(currentID) {
			if _, visited := distances[neighborID]; !visited {
				distances[neighborID] = distances[currentID] + 1
				queue = append(queue, neighborID)
			}
		}
	}

	return distances
}

// Reachable reports whether targetID can be reached from sourceID
func Reachable(g *graph.Graph, sourceID, targetID string) bool {
	if sourceID == targetID {
		return true
	}
	return len(ShortestPath(g, sourceID, targetID)) > 0
}
