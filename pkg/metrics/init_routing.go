package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRoutingMetrics() {
	r.RoutesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfind_routes_total",
			Help: "Total number of routing requests by outcome",
		},
		[]string{"status"},
	)

	r.RouteDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfind_route_duration_seconds",
			Help:    "Routing request duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"status"},
	)

	r.RouteHops = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_route_hops",
			Help:    "Number of graph edges traversed per successful route",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	r.RouteDistanceMeters = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_route_distance_meters",
			Help:    "Walking distance of successful routes in meters",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500},
		},
	)

	r.RouteFloorChanges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_route_floor_changes",
			Help:    "Number of floor changes per successful route",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	r.SnapFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfind_snap_failures_total",
			Help: "Endpoint resolutions that found no waypoint on the requested level",
		},
		[]string{"endpoint"},
	)

	r.BatchRequestsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "wayfind_batch_requests_total",
			Help: "Total number of routing requests submitted in batches",
		},
	)

	r.BatchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_batch_duration_seconds",
			Help:    "Batch routing duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)
}
