package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dd0wney/cluso-wayfind/pkg/config"
	"github.com/dd0wney/cluso-wayfind/pkg/engine"
	"github.com/dd0wney/cluso-wayfind/pkg/health"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
	"github.com/dd0wney/cluso-wayfind/pkg/snapshot"
)

const usage = `Usage: wayfind [flags] <command> [args]

Commands:
  route <from> <to>     Route between two endpoints
  batch <file>          Route every "from to" line of a file ("-" for stdin)
  stats                 Show building statistics
  check                 Run building diagnostics (exit 1 when unhealthy)
  snapshot <path>       Write a linked-graph snapshot
  shell                 Interactive routing shell

Endpoints are a waypoint id (g1), a coordinate on a level (144.96,-37.81@0)
or a coordinate on a floor (144.96,-37.81@L1).

Flags:
`

type app struct {
	engine  *engine.Engine
	metrics *metrics.Registry
	out     io.Writer
	json    bool
	level   *int
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	feedPath := flag.String("feed", "", "Building feed (YAML or JSON); overrides config")
	snapshotPath := flag.String("snapshot", "", "Snapshot to load when no feed is given; overrides config")
	asJSON := flag.Bool("json", false, "Print results as JSON")
	level := flag.Int("level", 0, "Only show instructions on this level")
	workers := flag.Int("workers", 0, "Batch routing workers; overrides config")
	dumpMetrics := flag.Bool("metrics", false, "Print collected metrics before exiting")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *feedPath != "" {
		cfg.FeedPath = *feedPath
	}
	if *snapshotPath != "" {
		cfg.SnapshotPath = *snapshotPath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	cfg.Metrics = cfg.Metrics || *dumpMetrics

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ec := &engine.Config{Logger: cfg.Logger()}
	var reg *metrics.Registry
	if cfg.Metrics {
		reg = metrics.NewRegistry()
		ec.Metrics = reg
	}

	e, err := engine.Open(cfg, ec)
	if err != nil {
		fatal(err)
	}

	a := &app{engine: e, metrics: reg, out: os.Stdout, json: *asJSON}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "level" {
			a.level = level
		}
	})

	err = a.run(args)
	if reg != nil {
		reg.UpdateSystemMetrics()
		if dumpErr := dumpRegistry(a.out, reg); dumpErr != nil && err == nil {
			err = dumpErr
		}
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
	os.Exit(1)
}

func (a *app) run(args []string) error {
	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "route", "r":
		if len(rest) != 2 {
			return errors.New("usage: route <from> <to>")
		}
		return a.route(rest[0], rest[1])

	case "batch":
		if len(rest) != 1 {
			return errors.New("usage: batch <file>")
		}
		return a.batch(rest[0])

	case "stats":
		return a.stats()

	case "check":
		return a.check()

	case "snapshot":
		if len(rest) != 1 {
			return errors.New("usage: snapshot <path>")
		}
		return a.writeSnapshot(rest[0])

	case "shell":
		return a.shell(os.Stdin)

	default:
		return fmt.Errorf("unknown command %q (see -h)", cmd)
	}
}

func (a *app) route(from, to string) error {
	rc, err := a.routeContext(from, to)
	if err != nil {
		return err
	}
	if a.level != nil {
		rc = rc.WithSelectedLevel(*a.level)
	}

	if a.json {
		return a.encode(rc)
	}
	fmt.Fprint(a.out, renderRoute(rc, a.level != nil))
	return nil
}

func (a *app) batch(path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	requests, err := readPairs(r)
	if err != nil {
		return err
	}

	results, err := a.engine.RouteMany(requests)
	if err != nil {
		return err
	}

	if a.json {
		return a.encode(batchJSON(results))
	}
	fmt.Fprint(a.out, renderBatch(results))
	return nil
}

// readPairs parses one "from to" request per line; blank lines and lines
// starting with # are skipped.
func readPairs(r io.Reader) ([]engine.RouteContext, error) {
	var requests []engine.RouteContext
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"<from> <to>\", got %q", line, text)
		}
		source, err := engine.ParseQuery(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		target, err := engine.ParseQuery(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		requests = append(requests, engine.NewRouteContext(source, target))
	}
	return requests, scanner.Err()
}

type batchEntry struct {
	Context engine.RouteContext `json:"context"`
	Error   string              `json:"error,omitempty"`
}

func batchJSON(results []engine.BatchResult) []batchEntry {
	out := make([]batchEntry, len(results))
	for i, res := range results {
		out[i].Context = res.Context
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	return out
}

func (a *app) stats() error {
	stats := a.engine.Stats()
	if a.json {
		return a.encode(stats)
	}
	fmt.Fprint(a.out, renderStats(stats, a.engine.Levels().FloorIDs(), a.engine.Dangling()))
	return nil
}

func (a *app) check() error {
	resp := health.NewBuildingChecker(a.engine).Check()
	if a.json {
		if err := a.encode(resp); err != nil {
			return err
		}
	} else {
		fmt.Fprint(a.out, renderHealth(resp))
	}
	if resp.Status == health.StatusUnhealthy {
		return errors.New("building is unhealthy")
	}
	return nil
}

func (a *app) writeSnapshot(path string) error {
	n, err := snapshot.WriteFile(path, a.engine.Snapshot())
	if err != nil {
		return err
	}
	if a.metrics != nil {
		a.metrics.RecordSnapshotWrite(n)
	}
	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("✓ wrote %s (%d bytes)", path, n)))
	return nil
}

func (a *app) encode(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
