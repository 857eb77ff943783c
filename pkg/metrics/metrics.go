package metrics

import (
	"runtime"
	"time"
)

// Route outcome labels
const (
	StatusSuccess     = "success"
	StatusEmpty       = "empty"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

// RecordRoute records a routing request with its duration. Geometry
// histograms are observed only for successful routes.
func (r *Registry) RecordRoute(status string, duration time.Duration, hops int, meters float64, floorChanges int) {
	r.RoutesTotal.WithLabelValues(status).Inc()
	r.RouteDuration.WithLabelValues(status).Observe(duration.Seconds())

	if status == StatusSuccess {
		r.RouteHops.Observe(float64(hops))
		r.RouteDistanceMeters.Observe(meters)
		r.RouteFloorChanges.Observe(float64(floorChanges))
	}
}

// RecordSnapFailure counts an endpoint that could not be snapped
func (r *Registry) RecordSnapFailure(endpoint string) {
	r.SnapFailuresTotal.WithLabelValues(endpoint).Inc()
}

// RecordBatch records a batch of routing requests
func (r *Registry) RecordBatch(size int, duration time.Duration) {
	r.BatchRequestsTotal.Add(float64(size))
	r.BatchDuration.Observe(duration.Seconds())
}

// UpdateGraphMetrics sets the size gauges of the loaded building
func (r *Registry) UpdateGraphMetrics(waypoints, edges, levels, dangling int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.GraphWaypointsTotal.Set(float64(waypoints))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphLevelsTotal.Set(float64(levels))
	r.GraphDanglingTotal.Set(float64(dangling))
}

// RecordElevatorLinks sets the number of edges added by elevator linking
func (r *Registry) RecordElevatorLinks(added int) {
	r.GraphElevatorLinks.Set(float64(added))
}

// RecordGraphLoad records a building load from a feed or snapshot
func (r *Registry) RecordGraphLoad(source, status string, duration time.Duration) {
	r.GraphLoadsTotal.WithLabelValues(source, status).Inc()
	if status == StatusSuccess {
		r.GraphLoadDuration.Observe(duration.Seconds())
	}
}

// RecordSnapshotWrite adds to the snapshot byte counter
func (r *Registry) RecordSnapshotWrite(bytes int) {
	r.SnapshotBytesWritten.Add(float64(bytes))
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics() {
	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
