package viz

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/logging"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/physics"
	"github.com/san-kum/predprey/internal/sim"
)

const (
	defaultWidth  = 100
	defaultHeight = 40
	minPlotHeight = 4

	// rows around the two plots: title, subtitle, two separators, four
	// sliders, status, error and key hints
	chromeRows = 11
	// rows the plots add to their drawing area: legend and caption for the
	// time series, axis, tick labels and caption for the phase plot
	timeSeriesExtra = 2
	phaseExtra      = 3
)

// Model is the interactive predator-prey view: two plots over four
// parameter sliders. Every slider change re-integrates the whole trajectory.
type Model struct {
	cfg        *config.Config
	dyn        *physics.LotkaVolterra
	integrator dynamo.Integrator
	solver     dynamo.Config
	x0         dynamo.State
	grid       sim.Grid
	log        *slog.Logger

	sliders []*Slider
	focus   int

	traj       *sim.Trajectory
	plotted    physics.LotkaVolterra
	period     float64
	periodOK   bool
	elapsed    time.Duration
	lastErr    error
	recomputes int

	width, height int
	theme         Theme
	showHelp      bool
}

// NewModel builds the sliders from cfg and computes the initial trajectory.
func NewModel(cfg *config.Config, log *slog.Logger) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	integ, err := integrators.New(cfg.Solver.Integrator)
	if err != nil {
		return Model{}, err
	}
	if log == nil {
		log = logging.Discard()
	}

	sliders := make([]*Slider, len(config.SliderSpecs))
	for i, spec := range config.SliderSpecs {
		sliders[i] = NewSlider(spec, cfg.SliderInitial(spec))
	}

	m := Model{
		cfg:        cfg,
		dyn:        cfg.GetModel(),
		integrator: integ,
		solver:     cfg.GetSolver(),
		x0:         cfg.GetInitState(),
		grid:       cfg.GetGrid(),
		log:        log,
		sliders:    sliders,
		width:      defaultWidth,
		height:     defaultHeight,
		theme:      GetTheme(cfg.UI.Theme),
	}
	m.recompute()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles input events. Slider moves recompute synchronously.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if !m.showHelp {
			m.handleMouse(msg)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	s := m.sliders[m.focus]
	changed := false
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "j", "down":
		m.focus = (m.focus + 1) % len(m.sliders)
	case "shift+tab", "k", "up":
		m.focus = (m.focus + len(m.sliders) - 1) % len(m.sliders)
	case "l", "right":
		changed = s.Nudge(1, coarseDivisions)
	case "h", "left":
		changed = s.Nudge(-1, coarseDivisions)
	case "L", "shift+right":
		changed = s.Nudge(1, fineDivisions)
	case "H", "shift+left":
		changed = s.Nudge(-1, fineDivisions)
	case "home":
		changed = s.Set(s.Spec.Min)
	case "end":
		changed = s.Set(s.Spec.Max)
	case "r":
		for _, sl := range m.sliders {
			if sl.Reset() {
				changed = true
			}
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = true
	}

	if changed {
		m.recompute()
	}
	return m, nil
}

// handleMouse sets a slider from a click or drag on its track.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return
	}

	idx := msg.Y - m.slidersTop()
	if idx < 0 || idx >= len(m.sliders) {
		return
	}
	r, ok := ratioAt(msg.X, m.width)
	if !ok {
		return
	}
	m.focus = idx
	if m.sliders[idx].SetRatio(r) {
		m.recompute()
	}
}

// recompute pushes the slider values into the model and re-integrates. On
// failure the previous trajectory stays on screen.
func (m *Model) recompute() {
	if err := applySliders(m.dyn, m.sliders); err != nil {
		m.lastErr = err
		m.log.Warn("set parameters", "err", err)
		return
	}

	s := sim.New(m.dyn, m.integrator)
	for _, mt := range metrics.Default(m.dyn) {
		s.AddMetric(mt)
	}

	start := time.Now()
	tr, err := s.Run(context.Background(), m.x0, m.grid, m.solver)
	m.elapsed = time.Since(start)
	m.recomputes++

	if err != nil {
		m.lastErr = err
		m.log.Warn("integration failed", "params", m.dyn.GetParams(), "err", err)
		return
	}

	m.traj = tr
	m.plotted = *m.dyn
	m.lastErr = nil
	m.period, m.periodOK = analysis.DominantPeriod(tr.Column(0), m.grid[1]-m.grid[0])

	m.log.Debug("recomputed",
		"alpha", m.dyn.Alpha, "beta", m.dyn.Beta, "delta", m.dyn.Delta, "gamma", m.dyn.Gamma,
		"steps", tr.StepsTaken, "rejected", tr.Rejected,
		"diverged", tr.Diverged(), "took", m.elapsed)
}

// applySliders writes every slider value into the parameter of the same name.
func applySliders(c dynamo.Configurable, sliders []*Slider) error {
	for _, s := range sliders {
		if err := c.SetParam(s.Spec.Name, s.Value); err != nil {
			return fmt.Errorf("slider %s: %w", s.Spec.Name, err)
		}
	}
	return nil
}

// Trajectory is the most recent successful integration.
func (m Model) Trajectory() *sim.Trajectory { return m.traj }

// Err is the error of the last recompute, nil if it succeeded.
func (m Model) Err() error { return m.lastErr }

// Values returns the current slider values keyed by parameter name.
func (m Model) Values() map[string]float64 {
	out := make(map[string]float64, len(m.sliders))
	for _, s := range m.sliders {
		out[s.Spec.Name] = s.Value
	}
	return out
}

type layout struct {
	plotWidth   int
	tsHeight    int
	phaseWidth  int
	phaseHeight int
}

func (m Model) layout() layout {
	avail := m.height - chromeRows - timeSeriesExtra - phaseExtra
	ts := max(avail/2, minPlotHeight)
	ph := max(avail-ts, minPlotHeight)
	return layout{
		plotWidth:   max(m.width-14, 20),
		tsHeight:    ts,
		phaseWidth:  max(m.width-phaseLabelWidth-4, 20),
		phaseHeight: ph,
	}
}

func (m Model) header() string {
	title := GradientText("PREDATOR-PREY DYNAMICS", m.theme.Prey, m.theme.Predator)
	sub := m.theme.label().Render(fmt.Sprintf("Lotka-Volterra · %s · t ∈ [%.4g, %.4g] · %d points",
		m.cfg.Solver.Integrator, m.grid[0], m.grid[len(m.grid)-1], len(m.grid)))
	return title + "\n" + sub
}

func (m Model) plots() string {
	l := m.layout()
	return TimeSeriesPlot(m.traj, l.plotWidth, l.tsHeight, m.theme) + "\n" +
		Separator(m.width, m.theme) + "\n" +
		PhasePlot(m.traj, l.phaseWidth, l.phaseHeight, m.theme) + "\n" +
		Separator(m.width, m.theme)
}

// slidersTop is the screen row of the first slider.
func (m Model) slidersTop() int {
	return lipgloss.Height(m.header()) + lipgloss.Height(m.plots())
}

func (m Model) status() string {
	lbl, val := m.theme.label(), m.theme.value()
	field := func(name, v string) string { return lbl.Render(name+" ") + val.Render(v) }

	// everything below describes the trajectory on screen, which lags the
	// sliders after a failed recompute
	eq := "none"
	if p, ok := m.plotted.Equilibrium(); ok {
		eq = fmt.Sprintf("(%.3g, %.3g)", p[0], p[1])
	}
	period := "n/a"
	if m.periodOK {
		period = fmt.Sprintf("%.3g", m.period)
	}
	drift := "n/a"
	if m.traj != nil {
		if d, ok := m.traj.Metrics["energy_drift"]; ok && !math.IsNaN(d) {
			drift = fmt.Sprintf("%.2e", d)
		}
	}

	parts := []string{
		field("equilibrium", eq),
		field("period", period),
		field("drift", drift),
		field("recompute", m.elapsed.Round(10*time.Microsecond).String()),
	}
	if m.traj != nil && m.traj.Diverged() {
		parts = append(parts, m.theme.errorText().Render("diverged"))
	}
	if m.lastErr != nil {
		parts = append(parts, m.theme.errorText().Render("stale"))
	}
	line := strings.Join(parts, "  ")

	errLine := ""
	if m.lastErr != nil {
		errLine = m.theme.errorText().Render("error: " + m.lastErr.Error())
	}
	return line + "\n" + errLine
}

func (m Model) View() string {
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpView())
	}

	var b strings.Builder
	b.WriteString(m.header() + "\n")
	b.WriteString(m.plots() + "\n")
	for i, s := range m.sliders {
		b.WriteString(s.Render(m.width, i == m.focus, m.theme) + "\n")
	}
	b.WriteString(m.status() + "\n")
	b.WriteString(m.theme.keyHint().Render("tab:next  h/l:adjust  H/L:fine  r:reset  t:theme  ?:help  q:quit"))
	return b.String()
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"tab / j", "next slider"},
		{"shift+tab / k", "previous slider"},
		{"l / right", "increase by 1% of range"},
		{"h / left", "decrease by 1% of range"},
		{"L / H", "fine adjust (0.1%)"},
		{"home / end", "slider minimum / maximum"},
		{"click", "set slider from track position"},
		{"r", "reset all sliders"},
		{"t", "cycle colour theme"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.theme.caption().Render("KEYBOARD SHORTCUTS") + "\n\n")
	for _, k := range keys {
		b.WriteString(m.theme.value().Render(fmt.Sprintf("%-14s", k[0])) + m.theme.label().Render(k[1]) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.label().Render("themes: "+strings.Join(ThemeNames(), ", ")) + "\n\n")
	for _, s := range m.sliders {
		b.WriteString(m.theme.label().Render(fmt.Sprintf("%-6s %-15s [%g, %g]", s.Spec.Name, s.Spec.Label, s.Spec.Min, s.Spec.Max)) + "\n")
	}
	return m.theme.panel().Render(strings.TrimRight(b.String(), "\n"))
}
