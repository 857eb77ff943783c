// Package graph implements the connectivity graph of the indoor route
// network: a directed adjacency list over waypoint ids.
package graph

import "sort"

// Graph maps a waypoint id to its ordered outgoing neighbor ids. Neighbor
// order is insertion order. A vertex without outgoing edges has no entry.
//
// A Graph is written during Build and LinkElevators and must be treated as
// read-only afterwards; concurrent readers are safe once writes stop.
type Graph struct {
	adj   map[string][]string
	edges int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{adj: make(map[string][]string)}
}

// AddEdge appends v to u's neighbor list. Duplicates are not filtered.
func (g *Graph) AddEdge(u, v string) {
	g.adj[u] = append(g.adj[u], v)
	g.edges++
}

// Neighbors returns u's outgoing neighbors, or nil when u has none.
// The returned slice must not be modified.
func (g *Graph) Neighbors(u string) []string {
	return g.adj[u]
}

// HasEdge reports whether at least one u -> v edge exists
func (g *Graph) HasEdge(u, v string) bool {
	for _, n := range g.adj[u] {
		if n == v {
			return true
		}
	}
	return false
}

// Len returns the number of vertices with at least one outgoing edge
func (g *Graph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the number of edges, duplicates included
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Vertices returns the ids that have outgoing edges, sorted
func (g *Graph) Vertices() []string {
	ids := make([]string, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Adjacency returns a copy of the adjacency lists, for snapshots
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for u, ns := range g.adj {
		out[u] = append([]string(nil), ns...)
	}
	return out
}

// FromAdjacency rebuilds a graph from adjacency lists produced by Adjacency
func FromAdjacency(adj map[string][]string) *Graph {
	g := New()
	for u, ns := range adj {
		if len(ns) == 0 {
			continue
		}
		g.adj[u] = append([]string(nil), ns...)
		g.edges += len(ns)
	}
	return g
}
