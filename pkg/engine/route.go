package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-wayfind/pkg/algorithms"
	"github.com/dd0wney/cluso-wayfind/pkg/feed"
	"github.com/dd0wney/cluso-wayfind/pkg/graph"
	"github.com/dd0wney/cluso-wayfind/pkg/instructions"
	"github.com/dd0wney/cluso-wayfind/pkg/logging"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
	"github.com/dd0wney/cluso-wayfind/pkg/parallel"
	"github.com/dd0wney/cluso-wayfind/pkg/route"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

// FindRoute resolves both endpoints, searches the fewest-hop path and
// segments it by level. Endpoints that resolve to the same waypoint yield
// an empty route and no error. An unreachable target fails with
// ErrUnreachable. Floor-id queries need a level lookup and are only
// accepted through Engine.Route.
func FindRoute(g *graph.Graph, store *waypoint.Store, source, target Query) (*route.Route, error) {
	r, _, _, err := findRoute(g, store, nil, source, target)
	return r, err
}

func findRoute(g *graph.Graph, store *waypoint.Store, levels feed.LevelLookup, source, target Query) (*route.Route, waypoint.Waypoint, waypoint.Waypoint, error) {
	src, err := resolve(store, levels, source)
	if err != nil {
		return nil, waypoint.Waypoint{}, waypoint.Waypoint{}, EndpointError(EndpointSource, err)
	}
	dst, err := resolve(store, levels, target)
	if err != nil {
		return nil, src, waypoint.Waypoint{}, EndpointError(EndpointTarget, err)
	}

	if src.ID == dst.ID {
		r, err := route.FromPath(nil, store)
		return r, src, dst, err
	}

	path := algorithms.ShortestPath(g, src.ID, dst.ID)
	if len(path) == 0 {
		return nil, src, dst, UnreachableError(src.ID, dst.ID)
	}

	r, err := route.FromPath(path, store)
	if err != nil {
		return nil, src, dst, NewError("segment").Between(src.ID, dst.ID).Cause(err).Err()
	}
	return r, src, dst, nil
}

// Route answers the request in rc and returns it with the resolved
// endpoints, route, instructions and selected level filled in. On failure
// the returned context carries whatever was resolved before the error.
func (e *Engine) Route(rc RouteContext) (RouteContext, error) {
	if rc.RequestID == uuid.Nil {
		rc.RequestID = uuid.New()
	}
	rc = rc.Clear()
	log := e.logger.With(logging.RequestID(rc.RequestID.String()))
	start := time.Now()

	r, src, dst, err := findRoute(e.graph, e.store, e.levels, rc.Source, rc.Target)
	if src.ID != "" {
		rc.SourceWaypoint = &src
	}
	if dst.ID != "" {
		rc.TargetWaypoint = &dst
	}
	rc.Elapsed = time.Since(start)

	if err != nil {
		var re *RoutingError
		if errors.As(err, &re) {
			re.RequestID = rc.RequestID.String()
		}
		e.recordFailure(err)
		log.Warn("routing failed",
			logging.String("source", rc.Source.String()),
			logging.String("target", rc.Target.String()),
			logging.Error(err),
			logging.Latency(rc.Elapsed))
		return rc, err
	}

	rc.Route = r
	rc.Instructions = instructions.FromRoute(r)
	if rc.Found() {
		rc.SelectedLevel = r.Segments[0].Level
	} else {
		rc.SelectedLevel = src.Level
	}

	status := metrics.StatusSuccess
	if !rc.Found() {
		status = metrics.StatusEmpty
	}
	if e.metrics != nil {
		e.metrics.RecordRoute(status, rc.Elapsed, r.Hops(), r.TotalDistanceMeters, floorChanges(r))
	}
	log.Debug("route computed",
		logging.WaypointID(src.ID),
		logging.String("target_id", dst.ID),
		logging.Hops(r.Hops()),
		logging.Meters("distance_m", r.TotalDistanceMeters),
		logging.Int("walking_minutes", r.WalkingMinutes),
		logging.FloorLevel(rc.SelectedLevel),
		logging.Latency(rc.Elapsed))

	return rc, nil
}

func floorChanges(r *route.Route) int {
	if r.Empty() {
		return 0
	}
	return len(r.Segments) - 1
}

func (e *Engine) recordFailure(err error) {
	if e.metrics == nil {
		return
	}
	status := metrics.StatusError
	if errors.Is(err, ErrUnreachable) {
		status = metrics.StatusUnreachable
	}
	e.metrics.RecordRoute(status, 0, 0, 0, 0)

	var re *RoutingError
	if errors.Is(err, waypoint.ErrNoWaypointOnLevel) && errors.As(err, &re) {
		e.metrics.RecordSnapFailure(re.Endpoint)
	}
}

// Reachable reports whether one waypoint can reach another
func (e *Engine) Reachable(fromID, toID string) bool {
	return algorithms.Reachable(e.graph, fromID, toID)
}

// BatchResult pairs a routed context with its error
type BatchResult struct {
	Context RouteContext
	Err     error
}

// RouteMany routes independent requests concurrently over the read-only
// graph. Results keep request order.
func (e *Engine) RouteMany(requests []RouteContext) ([]BatchResult, error) {
	timer := logging.StartTimer(e.logger, "route batch",
		logging.Count(len(requests)),
		logging.Int("workers", e.workers))

	results, err := parallel.Map(e.workers, e.logger, requests, func(_ int, rc RouteContext) BatchResult {
		out, err := e.Route(rc)
		return BatchResult{Context: out, Err: err}
	})

	if e.metrics != nil {
		e.metrics.RecordBatch(len(requests), timer.Elapsed())
	}
	if err != nil {
		timer.EndError(err)
	} else {
		timer.End()
	}

	return results, err
}
