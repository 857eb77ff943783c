package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-wayfind/pkg/config"
	"github.com/dd0wney/cluso-wayfind/pkg/engine"
	"github.com/dd0wney/cluso-wayfind/pkg/instructions"
	"github.com/dd0wney/cluso-wayfind/pkg/logging"
	"github.com/dd0wney/cluso-wayfind/pkg/metrics"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	routeView view = iota
	instructionsView
	buildingView
	metricsView
	viewCount
)

var viewNames = [...]string{"Route", "Instructions", "Building", "Metrics"}

type keyMap struct {
	Tab       key.Binding
	ShiftTab  key.Binding
	Enter     key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevFloor key.Binding
	NextFloor key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "route / next field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	PrevFloor: key.NewBinding(
		key.WithKeys("left", "["),
		key.WithHelp("←/[", "floor down"),
	),
	NextFloor: key.NewBinding(
		key.WithKeys("right", "]"),
		key.WithHelp("→/]", "floor up"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.PrevFloor, k.NextFloor, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down, k.PrevFloor, k.NextFloor},
		{k.Quit},
	}
}

type model struct {
	engine      *engine.Engine
	metrics     *metrics.Registry
	currentView view
	inputs      [2]textinput.Model
	focus       int
	steps       table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
	startTime   time.Time
	routes      int

	rc     *engine.RouteContext
	levels []int
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(e *engine.Engine, reg *metrics.Registry) model {
	from := textinput.New()
	from.Placeholder = "from: g1 or 144.9601,-37.8100@0"
	from.CharLimit = 80
	from.Width = 50
	from.Focus()

	to := textinput.New()
	to.Placeholder = "to: a2 or 144.9603,-37.8099@L1"
	to.CharLimit = 80
	to.Width = 50

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "", Width: 3},
		{Title: "Instruction", Width: 44},
		{Title: "Distance", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	return model{
		engine:      e,
		metrics:     reg,
		currentView: routeView,
		inputs:      [2]textinput.Model{from, to},
		steps:       t,
		help:        help.New(),
		keys:        keys,
		startTime:   time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.metrics != nil {
			m.metrics.UpdateSystemMetrics()
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.setView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.setView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.Enter) && m.currentView == routeView:
			if m.focus == 0 {
				m.focusInput(1)
				return m, nil
			}
			m.route()
			if m.rc != nil && m.rc.Found() {
				m.setView(instructionsView)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevFloor) && m.currentView == instructionsView:
			m.stepFloor(-1)
			return m, nil

		case key.Matches(msg, m.keys.NextFloor) && m.currentView == instructionsView:
			m.stepFloor(1)
			return m, nil
		}
	}

	// Update focused component
	switch m.currentView {
	case routeView:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	case instructionsView:
		m.steps, cmd = m.steps.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) setView(v view) {
	m.currentView = v
	if v == routeView {
		m.focusInput(m.focus)
	} else {
		m.inputs[0].Blur()
		m.inputs[1].Blur()
	}
}

func (m *model) focusInput(i int) {
	m.focus = i
	m.inputs[i].Focus()
	m.inputs[1-i].Blur()
}

func (m *model) route() {
	source, err := engine.ParseQuery(m.inputs[0].Value())
	if err != nil {
		m.fail("From: %v", err)
		m.focusInput(0)
		return
	}
	target, err := engine.ParseQuery(m.inputs[1].Value())
	if err != nil {
		m.fail("To: %v", err)
		return
	}

	rc, err := m.engine.Route(engine.NewRouteContext(source, target))
	m.routes++
	if err != nil {
		m.fail("%v", err)
		return
	}

	m.rc = &rc
	m.levels = nil
	if rc.Route != nil {
		m.levels = rc.Route.Levels()
	}
	m.refreshSteps()

	if !rc.Found() {
		m.message = "Source and target are the same waypoint"
	} else {
		m.message = fmt.Sprintf("%s in %s",
			instructions.Summary(rc.Route.TotalDistanceMeters, rc.Route.WalkingMinutes), rc.Elapsed)
	}
	m.messageErr = false
}

func (m *model) fail(format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.messageErr = true
}

// stepFloor moves the selected level along the floors the route visits
func (m *model) stepFloor(delta int) {
	if m.rc == nil || len(m.levels) == 0 {
		return
	}
	idx := 0
	for i, l := range m.levels {
		if l == m.rc.SelectedLevel {
			idx = i
		}
	}
	idx += delta
	if idx < 0 || idx >= len(m.levels) {
		return
	}
	rc := m.rc.WithSelectedLevel(m.levels[idx])
	m.rc = &rc
	m.refreshSteps()
}

func (m *model) refreshSteps() {
	rows := make([]table.Row, 0)
	if m.rc != nil {
		for i, in := range m.rc.InstructionsOnLevel(m.rc.SelectedLevel) {
			dist := ""
			if in.DistanceMeters != nil {
				dist = instructions.FormatDistance(*in.DistanceMeters)
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				glyph(in.Icon),
				in.Text,
				dist,
			})
		}
	}
	m.steps.SetRows(rows)
	m.steps.GotoTop()
}

var glyphs = map[instructions.Icon]string{
	instructions.IconNorth:       "↑",
	instructions.IconNorthEast:   "↗",
	instructions.IconEast:        "→",
	instructions.IconSouthEast:   "↘",
	instructions.IconSouth:       "↓",
	instructions.IconSouthWest:   "↙",
	instructions.IconWest:        "←",
	instructions.IconNorthWest:   "↖",
	instructions.IconLeft:        "↰",
	instructions.IconRight:       "↱",
	instructions.IconSlightLeft:  "↖",
	instructions.IconSlightRight: "↗",
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

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🧭 Wayfind · " + m.engine.Name()))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case routeView:
		s.WriteString(m.renderRoute())
	case instructionsView:
		s.WriteString(m.renderInstructions())
	case buildingView:
		s.WriteString(m.renderBuilding())
	case metricsView:
		s.WriteString(m.renderMetrics())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	var renderedTabs []string
	for i, tab := range viewNames {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderRoute() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Plan a Route"))
	s.WriteString("\n\n")
	s.WriteString(m.inputs[0].View())
	s.WriteString("\n")
	s.WriteString(m.inputs[1].View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Endpoints:\n"))
	s.WriteString(helpStyle.Render("  g1                    waypoint id\n"))
	s.WriteString(helpStyle.Render("  144.9601,-37.8100@0   coordinate on level 0\n"))
	s.WriteString(helpStyle.Render("  144.9601,-37.8100@L1  coordinate on floor L1\n"))

	return contentStyle.Render(s.String())
}

func (m model) renderInstructions() string {
	var s strings.Builder

	if m.rc == nil || !m.rc.Found() {
		s.WriteString(headerStyle.Render("Instructions"))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("No route yet. Plan one in the Route view."))
		return contentStyle.Render(s.String())
	}

	s.WriteString(headerStyle.Render(fmt.Sprintf("Floor %d", m.rc.SelectedLevel)))
	s.WriteString("  ")
	s.WriteString(m.renderFloorStrip())
	s.WriteString("\n\n")
	s.WriteString(m.steps.View())

	return contentStyle.Render(s.String())
}

// renderFloorStrip shows the floors the route visits with the selected one
// highlighted
func (m model) renderFloorStrip() string {
	parts := make([]string, len(m.levels))
	for i, l := range m.levels {
		label := fmt.Sprintf("%d", l)
		if l == m.rc.SelectedLevel {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) renderBuilding() string {
	stats := m.engine.Stats()

	statsContent := fmt.Sprintf(`📊 Building
━━━━━━━━━━━━━━━
Waypoints:  %d
Edges:      %d
Levels:     %d
Elevators:  %d
Links:      %d
Dangling:   %d`,
		stats.Waypoints,
		stats.Edges,
		stats.Levels,
		stats.Elevators,
		stats.ElevatorLinks,
		stats.Dangling,
	)

	var floors strings.Builder
	floors.WriteString("🏢 Floors\n━━━━━━━━━━━━━━━")
	lookup := m.engine.Levels()
	for _, id := range lookup.FloorIDs() {
		level, _ := lookup.Level(id)
		fmt.Fprintf(&floors, "\n%-8s level %d", id, level)
	}

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			statsBoxStyle.Render(statsContent),
			statsBoxStyle.Render(floors.String())),
	)
}

func (m model) renderMetrics() string {
	uptime := time.Since(m.startTime).Round(time.Second)

	content := fmt.Sprintf(`📈 Session
━━━━━━━━━━━━━━━
Uptime:     %s
Routes:     %d`,
		uptime,
		m.routes,
	)
	if m.rc != nil && m.rc.Route != nil {
		r := m.rc.Route
		content += fmt.Sprintf(`

🧭 Last Route
━━━━━━━━━━━━━━━
Hops:       %d
Distance:   %s
Estimate:   %.1f
Walking:    %s
Latency:    %s`,
			r.Hops(),
			instructions.FormatDistance(r.TotalDistanceMeters),
			r.EstimatedTime,
			instructions.FormatMinutes(r.WalkingMinutes),
			m.rc.Elapsed,
		)
	}

	return contentStyle.Render(statsBoxStyle.Render(content))
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	feedPath := flag.String("feed", "", "Building feed; overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *feedPath != "" {
		cfg.FeedPath = *feedPath
	}
	if len(flag.Args()) > 0 && cfg.FeedPath == "" {
		cfg.FeedPath = flag.Arg(0)
	}

	// the alternate screen owns stdout and stderr; log to a file if asked
	logger := logging.NewNopLogger()
	if path := os.Getenv("WAYFIND_TUI_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.New(f, cfg.LogLevel)
	}

	reg := metrics.NewRegistry()
	e, err := engine.Open(cfg, &engine.Config{Logger: logger, Metrics: reg})
	if err != nil {
		log.Fatalf("Failed to load building: %v", err)
	}

	p := tea.NewProgram(initialModel(e, reg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
