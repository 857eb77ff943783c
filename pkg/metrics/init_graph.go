package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphWaypointsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_graph_waypoints_total",
			Help: "Number of waypoints in the loaded building",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_graph_edges_total",
			Help: "Number of directed edges in the connectivity graph",
		},
	)

	r.GraphLevelsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_graph_levels_total",
			Help: "Number of distinct floor levels",
		},
	)

	r.GraphDanglingTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_graph_dangling_neighbors_total",
			Help: "Declared neighbors that name no known waypoint",
		},
	)

	r.GraphElevatorLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_graph_elevator_links_total",
			Help: "Edges added by elevator linking",
		},
	)

	r.GraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfind_graph_loads_total",
			Help: "Total number of building loads by source and outcome",
		},
		[]string{"source", "status"},
	)

	r.GraphLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_graph_load_duration_seconds",
			Help:    "Building load duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.SnapshotBytesWritten = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "wayfind_snapshot_bytes_written_total",
			Help: "Compressed snapshot bytes written",
		},
	)
}
