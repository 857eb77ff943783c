package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-wayfind/pkg/engine"
)

const shellHelp = `
Commands:
  route <from> <to>    Route between two endpoints (alias: r)
  level <n>            Show the last route on floor level n
  all                  Show the whole last route again
  reachable <a> <b>    Check whether waypoint a can reach b
  stats                Show building statistics
  help                 Show this help
  exit                 Quit
`

// shell runs an interactive loop. The last route is kept so the caller can
// flip between floors without re-routing.
func (a *app) shell(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var last *engine.RouteContext

	fmt.Fprintln(a.out, titleStyle.Render("wayfind · "+a.engine.Name()))
	fmt.Fprintln(a.out, "Type 'help' for available commands, 'exit' to quit")

	for {
		fmt.Fprint(a.out, "wayfind> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "exit", "quit":
			return nil

		case "help":
			fmt.Fprint(a.out, shellHelp)

		case "stats":
			a.report(a.stats())

		case "route", "r":
			if len(parts) != 3 {
				fmt.Fprintln(a.out, "Usage: route <from> <to>")
				continue
			}
			rc, err := a.routeContext(parts[1], parts[2])
			if err != nil {
				a.report(err)
				continue
			}
			last = &rc
			fmt.Fprint(a.out, renderRoute(rc, false))

		case "level":
			if last == nil {
				fmt.Fprintln(a.out, "No route yet")
				continue
			}
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: level <n>")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				a.report(fmt.Errorf("bad level %q", parts[1]))
				continue
			}
			rc := last.WithSelectedLevel(n)
			last = &rc
			fmt.Fprint(a.out, renderRoute(rc, true))

		case "all":
			if last == nil {
				fmt.Fprintln(a.out, "No route yet")
				continue
			}
			fmt.Fprint(a.out, renderRoute(*last, false))

		case "reachable":
			if len(parts) != 3 {
				fmt.Fprintln(a.out, "Usage: reachable <a> <b>")
				continue
			}
			fmt.Fprintf(a.out, "%s -> %s: %v\n", parts[1], parts[2], a.engine.Reachable(parts[1], parts[2]))

		default:
			fmt.Fprintf(a.out, "Unknown command: %s (type 'help' for available commands)\n", parts[0])
		}
	}
}

func (a *app) routeContext(from, to string) (engine.RouteContext, error) {
	source, err := engine.ParseQuery(from)
	if err != nil {
		return engine.RouteContext{}, err
	}
	target, err := engine.ParseQuery(to)
	if err != nil {
		return engine.RouteContext{}, err
	}
	return a.engine.Route(engine.NewRouteContext(source, target))
}

func (a *app) report(err error) {
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("✗ "+err.Error()))
	}
}
