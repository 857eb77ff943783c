package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-wayfind/pkg/engine"
	"github.com/dd0wney/cluso-wayfind/pkg/graph"
	"github.com/dd0wney/cluso-wayfind/pkg/health"
	"github.com/dd0wney/cluso-wayfind/pkg/instructions"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	floorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#00FFFF"))

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	distanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

var glyphs = map[instructions.Icon]string{
	instructions.IconNorth:       "↑",
	instructions.IconNorthEast:   "↗",
	instructions.IconEast:        "→",
	instructions.IconSouthEast:   "↘",
	instructions.IconSouth:       "↓",
	instructions.IconSouthWest:   "↙",
	instructions.IconWest:        "←",
	instructions.IconNorthWest:   "↖",
	instructions.IconStraight:    "↑",
	instructions.IconSlightLeft:  "↖",
	instructions.IconSlightRight: "↗",
	instructions.IconLeft:        "↰",
	instructions.IconRight:       "↱",
	instructions.IconSharpLeft:   "↙",
	instructions.IconSharpRight:  "↘",
	instructions.IconUTurn:       "↶",
	instructions.IconStairsUp:    "⇞",
	instructions.IconStairsDown:  "⇟",
	instructions.IconArrive:      "◉",
}

func glyph(icon instructions.Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return "•"
}

// renderRoute prints the instructions grouped by floor. With selectedOnly
// only the selected level is shown.
func renderRoute(rc engine.RouteContext, selectedOnly bool) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("%s → %s", rc.Source, rc.Target)))
	s.WriteString("\n")

	if !rc.Found() {
		s.WriteString(successStyle.Render("✓ already there"))
		s.WriteString("\n")
		return s.String()
	}

	list := rc.Instructions
	if selectedOnly {
		list = rc.InstructionsOnLevel(rc.SelectedLevel)
	}

	level, first := 0, true
	for _, in := range list {
		if first || in.Level != level {
			level, first = in.Level, false
			s.WriteString("\n")
			s.WriteString(floorStyle.Render(fmt.Sprintf("Floor %d", level)))
			s.WriteString("\n")
		}
		line := fmt.Sprintf("%s  %s", glyph(in.Icon), in.Text)
		if in.Kind == instructions.KindFloorChange && in.Distance() > 0 {
			line += distanceStyle.Render(" (" + instructions.FormatDistance(in.Distance()) + ")")
		}
		s.WriteString(stepStyle.Render(line))
		s.WriteString("\n")
	}

	r := rc.Route
	s.WriteString("\n")
	s.WriteString(summaryStyle.Render(fmt.Sprintf("%s · %d hops · %d floors · %s",
		instructions.Summary(r.TotalDistanceMeters, r.WalkingMinutes),
		r.Hops(), len(r.Levels()), rc.Elapsed)))
	s.WriteString("\n")
	return s.String()
}

func renderBatch(results []engine.BatchResult) string {
	var s strings.Builder

	fmt.Fprintf(&s, "%-6s %-28s %-28s %-8s %s\n", "#", "From", "To", "Hops", "Result")
	s.WriteString(strings.Repeat("─", 90))
	s.WriteString("\n")

	found := 0
	for i, res := range results {
		rc := res.Context
		var result string
		hops := "-"
		switch {
		case res.Err != nil:
			result = errorStyle.Render(res.Err.Error())
		case rc.Found():
			found++
			hops = fmt.Sprintf("%d", rc.Route.Hops())
			result = instructions.Summary(rc.Route.TotalDistanceMeters, rc.Route.WalkingMinutes)
		default:
			result = "same waypoint"
		}
		fmt.Fprintf(&s, "%-6d %-28s %-28s %-8s %s\n",
			i+1, truncate(rc.Source.String(), 28), truncate(rc.Target.String(), 28), hops, result)
	}

	s.WriteString("\n")
	s.WriteString(successStyle.Render(fmt.Sprintf("✓ %d/%d routes found", found, len(results))))
	s.WriteString("\n")
	return s.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func renderStats(stats engine.Stats, floors []string, dangling []graph.DanglingEdge) string {
	body := fmt.Sprintf(`Building:        %s
Waypoints:       %d
Edges:           %d
Levels:          %d
Floors:          %s
Elevators:       %d
Elevator links:  %d
Dangling:        %d`,
		stats.Building,
		stats.Waypoints,
		stats.Edges,
		stats.Levels,
		strings.Join(floors, ", "),
		stats.Elevators,
		stats.ElevatorLinks,
		stats.Dangling,
	)

	var s strings.Builder
	s.WriteString(summaryStyle.Render(body))
	s.WriteString("\n")
	for _, d := range dangling {
		fmt.Fprintf(&s, "  %s declares unknown neighbor %s\n", d.From, d.To)
	}
	return s.String()
}

var statusStyles = map[health.Status]lipgloss.Style{
	health.StatusHealthy:   successStyle,
	health.StatusDegraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true),
	health.StatusUnhealthy: errorStyle,
}

func renderHealth(resp health.Response) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Building diagnostics: "))
	s.WriteString(statusStyles[resp.Status].Render(string(resp.Status)))
	s.WriteString("\n")
	for _, name := range resp.Names() {
		c := resp.Checks[name]
		fmt.Fprintf(&s, "  %-20s %s  %s\n", name, statusStyles[c.Status].Render(fmt.Sprintf("%-9s", c.Status)), c.Message)
	}
	return s.String()
}

// dumpRegistry prints every gathered family in a compact text form
func dumpRegistry(w io.Writer, reg *metrics.Registry) error {
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Metrics"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "  %s%s %s\n", mf.GetName(), labels(m), metricValue(mf.GetType(), m))
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, lp := range pairs {
		parts[i] = fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func metricValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "-"
	}
}
