// Package engine is the routing facade: it owns a finalized building
// (waypoint store, linked connectivity graph, level lookup) and answers
// route requests carried in RouteContext values.
package engine

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dd0wney/cluso-wayfind/pkg/feed"
	"github.com/dd0wney/cluso-wayfind/pkg/graph"
	"github.com/dd0wney/cluso-wayfind/pkg/logging"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
	"github.com/dd0wney/cluso-wayfind/pkg/parallel"
	"github.com/dd0wney/cluso-wayfind/pkg/snapshot"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// Engine routes over one building. It is read-only after construction and
// safe for concurrent Route calls.
type Engine struct {
	name          string
	store         *waypoint.Store
	graph         *graph.Graph
	levels        feed.LevelLookup
	dangling      []graph.DanglingEdge
	elevatorLinks int

	logger  logging.Logger
	metrics *metrics.Registry
	workers int
}

// Stats summarizes the loaded building
type Stats struct {
	Building      string `json:"building"`
	Waypoints     int    `json:"waypoints"`
	Edges         int    `json:"edges"`
	Levels        int    `json:"levels"`
	Elevators     int    `json:"elevators"`
	ElevatorLinks int    `json:"elevator_links"`
	Dangling      int    `json:"dangling"`
}

// Config holds the engine's collaborators. A nil Config or zero fields
// select the defaults: no logging, no metrics, one batch worker per CPU.
// Worker counts are clamped to [1, parallel.MaxWorkers].
type Config struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
	Workers int
}

func newEngine(name string, cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Engine{
		name:    name,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		workers: validation.ClampInt(validation.DefaultOr(cfg.Workers, runtime.NumCPU()), 1, parallel.MaxWorkers),
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}
	e.logger = e.logger.With(logging.Component("engine"))
	return e
}

// Load builds the store and graph from a parsed feed and links elevators.
// This is the one-time finalization step; the engine never mutates the
// graph afterwards.
func Load(b *feed.Building, cfg *Config) (*Engine, error) {
	e := newEngine(b.Name, cfg)
	timer := logging.StartTimer(e.logger, "load building", logging.String("building", b.Name))

	points := b.RoutePoints()
	store, err := waypoint.NewStoreFromRoutePoints(points)
	if err != nil {
		e.recordLoad("feed", metrics.StatusError, timer.Elapsed())
		timer.EndError(err)
		return nil, fmt.Errorf("failed to index waypoints: %w", err)
	}

	g, stats := graph.Build(points)
	for _, d := range stats.Dangling {
		e.logger.Warn("dropping neighbor that names no waypoint",
			logging.WaypointID(d.From),
			logging.String("neighbor", d.To))
	}

	elevators := store.Elevators()
	links := graph.LinkElevators(g, elevators)

	e.store = store
	e.graph = g
	e.levels = b.Levels()
	e.dangling = stats.Dangling
	e.elevatorLinks = links

	e.recordLoad("feed", metrics.StatusSuccess, timer.Elapsed())
	timer.End(
		logging.Count(store.Len()),
		logging.Int("edges", g.EdgeCount()),
		logging.Int("elevators", len(elevators)),
		logging.Int("elevator_links", links),
		logging.Int("dangling", len(stats.Dangling)))

	return e, nil
}

// LoadFile reads a feed file and loads it
func LoadFile(path string, cfg *Config) (*Engine, error) {
	b, err := feed.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b, cfg)
}

// FromSnapshot restores an engine without re-running elevator linking
func FromSnapshot(s *snapshot.Snapshot, cfg *Config) (*Engine, error) {
	e := newEngine(s.Building, cfg)
	timer := logging.StartTimer(e.logger, "restore snapshot", logging.String("building", s.Building))

	store, err := s.Store()
	if err != nil {
		e.recordLoad("snapshot", metrics.StatusError, timer.Elapsed())
		timer.EndError(err)
		return nil, err
	}

	e.store = store
	e.graph = s.Graph()
	e.levels = feed.LevelLookup(s.Levels)
	e.elevatorLinks = s.ElevatorLinks

	e.recordLoad("snapshot", metrics.StatusSuccess, timer.Elapsed())
	timer.End(
		logging.Count(store.Len()),
		logging.Int("edges", e.graph.EdgeCount()))

	return e, nil
}

// Snapshot captures the finalized building
func (e *Engine) Snapshot() *snapshot.Snapshot {
	return snapshot.New(e.name, e.levels, e.store, e.graph, e.elevatorLinks)
}

func (e *Engine) recordLoad(source, status string, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordGraphLoad(source, status, elapsed)
	if status != metrics.StatusSuccess {
		return
	}
	e.metrics.UpdateGraphMetrics(e.store.Len(), e.graph.EdgeCount(), len(e.store.Levels()), len(e.dangling))
	e.metrics.RecordElevatorLinks(e.elevatorLinks)
}

// Name returns the building name
func (e *Engine) Name() string { return e.name }

// Store returns the waypoint store
func (e *Engine) Store() *waypoint.Store { return e.store }

// Graph returns the linked connectivity graph. Callers must not mutate it.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Levels returns the floor id to level lookup
func (e *Engine) Levels() feed.LevelLookup { return e.levels }

// Dangling returns the declared neighbors dropped at load
func (e *Engine) Dangling() []graph.DanglingEdge { return e.dangling }

// Stats summarizes the loaded building
func (e *Engine) Stats() Stats {
	return Stats{
		Building:      e.name,
		Waypoints:     e.store.Len(),
		Edges:         e.graph.EdgeCount(),
		Levels:        len(e.store.Levels()),
		Elevators:     len(e.store.Elevators()),
		ElevatorLinks: e.elevatorLinks,
		Dangling:      len(e.dangling),
	}
}

// Resolve maps a query to a waypoint of the building
func (e *Engine) Resolve(q Query) (waypoint.Waypoint, error) {
	return resolve(e.store, e.levels, q)
}
