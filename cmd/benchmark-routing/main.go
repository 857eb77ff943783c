package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/dd0wney/cluso-wayfind/pkg/engine"
	"github.com/dd0wney/cluso-wayfind/pkg/instructions"
	"github.com/dd0wney/cluso-wayfind/pkg/logging"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
	"github.com/dd0wney/cluso-wayfind/pkg/waypoint"
)

func main() {
	feedPath := flag.String("feed", "", "Building feed (YAML or JSON)")
	numQueries := flag.Int("queries", 1000, "Number of random routes")
	workers := flag.Int("workers", 8, "Workers for the batch run")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	snapRatio := flag.Float64("snap", 0.25, "Share of endpoints given as coordinates instead of ids")
	flag.Parse()

	if *feedPath == "" {
		fmt.Fprintln(os.Stderr, "usage: benchmark-routing -feed building.yaml [-queries N] [-workers N]")
		os.Exit(2)
	}

	fmt.Printf("🧭 Indoor Routing Benchmark\n")
	fmt.Printf("===========================\n\n")

	reg := metrics.NewRegistry()
	fmt.Printf("📂 Loading %s...\n", *feedPath)
	start := time.Now()
	e, err := engine.LoadFile(*feedPath, &engine.Config{
		Logger:  logging.New(os.Stderr, "warn"),
		Metrics: reg,
		Workers: *workers,
	})
	if err != nil {
		log.Fatalf("Failed to load building: %v", err)
	}
	stats := e.Stats()
	fmt.Printf("   Building:   %s\n", stats.Building)
	fmt.Printf("   Waypoints:  %d\n", stats.Waypoints)
	fmt.Printf("   Edges:      %d (%d elevator links)\n", stats.Edges, stats.ElevatorLinks)
	fmt.Printf("   Levels:     %d\n", stats.Levels)
	fmt.Printf("   Load time:  %s\n\n", time.Since(start))

	if stats.Waypoints < 2 {
		fmt.Printf("❌ Need at least two waypoints to benchmark\n")
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	requests := randomRequests(rng, e.Store().All(), *numQueries, *snapRatio)

	fmt.Printf("🎯 Routing %d random pairs sequentially (seed %d)...\n\n", len(requests), *seed)
	runSequential(e, requests)

	fmt.Printf("\n⚡ Routing the same pairs with %d workers...\n\n", *workers)
	runBatch(e, requests)

	fmt.Printf("\n📊 Analyzing connectivity...\n\n")
	analyzeConnectivity(e, rng)
}

// randomRequests picks endpoint pairs; a share of them are given as the
// waypoint's own coordinate so the snapping path is exercised too
func randomRequests(rng *rand.Rand, all []waypoint.Waypoint, n int, snapRatio float64) []engine.RouteContext {
	endpoint := func() engine.Query {
		w := all[rng.Intn(len(all))]
		if rng.Float64() < snapRatio {
			return engine.AtPoint(w.Point.Lng, w.Point.Lat, w.Level)
		}
		return engine.ByID(w.ID)
	}

	requests := make([]engine.RouteContext, n)
	for i := range requests {
		requests[i] = engine.NewRouteContext(endpoint(), endpoint())
	}
	return requests
}

type summary struct {
	found       int
	empty       int
	failed      int
	totalHops   int
	totalMeters float64
	totalSteps  int
	latencies   []time.Duration
}

func (s *summary) add(rc engine.RouteContext, err error) {
	switch {
	case err != nil:
		s.failed++
		return
	case !rc.Found():
		s.empty++
	default:
		s.found++
		s.totalHops += rc.Route.Hops()
		s.totalMeters += rc.Route.TotalDistanceMeters
		s.totalSteps += len(rc.Instructions)
	}
	s.latencies = append(s.latencies, rc.Elapsed)
}

func (s *summary) print(total int, wall time.Duration) {
	pct := func(n int) float64 { return 100.0 * float64(n) / float64(total) }

	fmt.Printf("Total routes:   %d\n", total)
	fmt.Printf("Found:          %d (%.1f%%)\n", s.found, pct(s.found))
	fmt.Printf("Same waypoint:  %d (%.1f%%)\n", s.empty, pct(s.empty))
	fmt.Printf("Failed:         %d (%.1f%%)\n", s.failed, pct(s.failed))

	if s.found > 0 {
		fmt.Printf("\nRoutes:\n")
		fmt.Printf("  Avg hops:     %.1f\n", float64(s.totalHops)/float64(s.found))
		fmt.Printf("  Avg length:   %s\n", instructions.FormatDistance(s.totalMeters/float64(s.found)))
		fmt.Printf("  Avg steps:    %.1f instructions\n", float64(s.totalSteps)/float64(s.found))
	}

	if len(s.latencies) > 0 {
		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		q := func(p float64) time.Duration {
			return s.latencies[int(p*float64(len(s.latencies)-1))]
		}
		fmt.Printf("\nLatency:\n")
		fmt.Printf("  p50:          %s\n", q(0.50))
		fmt.Printf("  p95:          %s\n", q(0.95))
		fmt.Printf("  p99:          %s\n", q(0.99))
		fmt.Printf("  Max:          %s\n", s.latencies[len(s.latencies)-1])
	}

	fmt.Printf("\nWall time:      %s\n", wall)
	fmt.Printf("Throughput:     %.0f routes/sec\n", float64(total)/wall.Seconds())
}

func runSequential(e *engine.Engine, requests []engine.RouteContext) {
	var s summary
	start := time.Now()
	for _, rc := range requests {
		out, err := e.Route(rc)
		s.add(out, err)
	}
	s.print(len(requests), time.Since(start))
}

func runBatch(e *engine.Engine, requests []engine.RouteContext) {
	start := time.Now()
	results, err := e.RouteMany(requests)
	wall := time.Since(start)
	if err != nil {
		fmt.Printf("⚠️  batch: %v\n", err)
	}

	var s summary
	for _, res := range results {
		s.add(res.Context, res.Err)
	}
	s.print(len(requests), wall)
}

// analyzeConnectivity samples waypoints and reports how much of the
// building each one reaches, and the degree distribution
func analyzeConnectivity(e *engine.Engine, rng *rand.Rand) {
	all := e.Store().All()
	g := e.Graph()

	sampleSize := 20
	if len(all) < sampleSize {
		sampleSize = len(all)
	}

	var sumReach, minDeg, maxDeg, sumDeg int
	minDeg = 1 << 30
	for i := 0; i < sampleSize; i++ {
		w := all[rng.Intn(len(all))]
		reached := 0
		for _, other := range all {
			if e.Reachable(w.ID, other.ID) {
				reached++
			}
		}
		sumReach += reached

		d := len(g.Neighbors(w.ID))
		sumDeg += d
		if d < minDeg {
			minDeg = d
		}
		if d > maxDeg {
			maxDeg = d
		}
	}

	fmt.Printf("Sample of %d waypoints:\n", sampleSize)
	fmt.Printf("  Avg reachable:  %.1f%% of building\n", 100.0*float64(sumReach)/float64(sampleSize*len(all)))
	fmt.Printf("  Degree:         avg %.1f, min %d, max %d\n", float64(sumDeg)/float64(sampleSize), minDeg, maxDeg)
	if d := e.Dangling(); len(d) > 0 {
		fmt.Printf("  Dangling:       %d declared neighbors point nowhere\n", len(d))
	}
}
