package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the routing engine
type Registry struct {
	// Routing Metrics
	RoutesTotal         *prometheus.CounterVec
	RouteDuration       *prometheus.HistogramVec
	RouteHops           prometheus.Histogram
	RouteDistanceMeters prometheus.Histogram
	RouteFloorChanges   prometheus.Histogram
	SnapFailuresTotal   *prometheus.CounterVec
	BatchRequestsTotal  prometheus.Counter
	BatchDuration       prometheus.Histogram

	// Graph Metrics
	GraphWaypointsTotal  prometheus.Gauge
	GraphEdgesTotal      prometheus.Gauge
	GraphLevelsTotal     prometheus.Gauge
	GraphDanglingTotal   prometheus.Gauge
	GraphElevatorLinks   prometheus.Gauge
	GraphLoadsTotal      *prometheus.CounterVec
	GraphLoadDuration    prometheus.Histogram
	SnapshotBytesWritten prometheus.Counter

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	startTime time.Time
	registry  *prometheus.Registry
	mu        sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		startTime: time.Now(),
		registry:  reg,
	}

	r.initRoutingMetrics()
	r.initGraphMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
