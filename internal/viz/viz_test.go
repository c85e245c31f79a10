package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/sim"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestSliderClamping(t *testing.T) {
	for _, spec := range config.SliderSpecs {
		s := NewSlider(spec, 1e9)
		if s.Value != spec.Max {
			t.Errorf("%s: initial 1e9 clamped to %v, want %v", spec.Name, s.Value, spec.Max)
		}
		for i := 0; i < 500; i++ {
			s.Nudge(-1, coarseDivisions)
		}
		if s.Value != spec.Min {
			t.Errorf("%s: after many decrements value = %v, want %v", spec.Name, s.Value, spec.Min)
		}
		if s.Nudge(-1, coarseDivisions) {
			t.Errorf("%s: nudging below min reported a change", spec.Name)
		}
		s.Set(math.NaN())
		if s.Value < spec.Min || s.Value > spec.Max {
			t.Errorf("%s: NaN set left range: %v", spec.Name, s.Value)
		}
		s.SetRatio(2)
		if s.Value != spec.Max {
			t.Errorf("%s: SetRatio(2) = %v, want max", spec.Name, s.Value)
		}
	}
}

func TestSliderStep(t *testing.T) {
	s := NewSlider(config.SliderSpecs[0], 1.0)
	s.Nudge(1, coarseDivisions)
	want := 1.0 + (3.0-0.1)/100
	if math.Abs(s.Value-want) > 1e-12 {
		t.Errorf("coarse step: got %v, want %v", s.Value, want)
	}
	s.Nudge(-1, fineDivisions)
	want -= (3.0 - 0.1) / 1000
	if math.Abs(s.Value-want) > 1e-12 {
		t.Errorf("fine step: got %v, want %v", s.Value, want)
	}
	if !s.Reset() || s.Value != 1.0 {
		t.Errorf("reset: got %v, want 1", s.Value)
	}
}

func TestRatioAt(t *testing.T) {
	const total = 80
	if _, ok := ratioAt(0, total); ok {
		t.Error("column 0 is the label, not the track")
	}
	r, ok := ratioAt(sliderLabelWidth+1, total)
	if !ok || r != 0 {
		t.Errorf("track start: got %v %v, want 0 true", r, ok)
	}
	r, ok = ratioAt(sliderLabelWidth+trackWidth(total), total)
	if !ok || r != 1 {
		t.Errorf("track end: got %v %v, want 1 true", r, ok)
	}
	if _, ok := ratioAt(sliderLabelWidth+1+trackWidth(total), total); ok {
		t.Error("column past the track accepted")
	}
}

func TestCanvasPolyline(t *testing.T) {
	c := NewCanvas(10, 5)
	vp := Viewport{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	c.Polyline([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, vp)

	if !c.IsSet(0, c.PixelHeight()-1) {
		t.Error("origin should map to bottom-left")
	}
	if !c.IsSet(c.PixelWidth()-1, 0) {
		t.Error("(1,1) should map to top-right")
	}
	if c.IsSet(c.PixelWidth()-1, c.PixelHeight()-1) {
		t.Error("bottom-right should be empty")
	}
	if got := len(strings.Split(c.String(), "\n")); got != 5 {
		t.Errorf("rows = %d, want 5", got)
	}

	c.Clear()
	if c.IsSet(0, c.PixelHeight()-1) {
		t.Error("clear left pixels set")
	}
}

func TestNewModel_InitialRecompute(t *testing.T) {
	m := newTestModel(t)
	tr := m.Trajectory()
	if tr == nil {
		t.Fatal("no trajectory after NewModel")
	}
	if tr.Len() != sim.DefaultPoints {
		t.Errorf("trajectory length = %d, want %d", tr.Len(), sim.DefaultPoints)
	}
	if tr.States[0][0] != 10 || tr.States[0][1] != 5 {
		t.Errorf("first row = %v, want [10 5]", tr.States[0])
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}

	want := map[string]float64{"alpha": 1, "beta": 0.1, "delta": 0.1, "gamma": 1.5}
	for k, v := range want {
		if got := m.Values()[k]; got != v {
			t.Errorf("%s = %v, want %v", k, got, v)
		}
	}
}

func TestNewModel_UnknownIntegrator(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Solver.Integrator = "leapfrog"
	if _, err := NewModel(cfg, nil); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestUpdate_SliderKeysRecompute(t *testing.T) {
	m := newTestModel(t)
	before := m.Trajectory()
	n := m.recomputes

	m = press(t, m, runes("l"))
	if m.recomputes != n+1 {
		t.Errorf("recomputes = %d, want %d", m.recomputes, n+1)
	}
	if m.Trajectory() == before {
		t.Error("trajectory not replaced after slider move")
	}
	if got := m.Values()["alpha"]; math.Abs(got-1.029) > 1e-12 {
		t.Errorf("alpha = %v, want 1.029", got)
	}
	if m.dyn.Alpha != m.Values()["alpha"] {
		t.Errorf("model alpha %v not synced with slider %v", m.dyn.Alpha, m.Values()["alpha"])
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.Values()["beta"]; got != 1.0 {
		t.Errorf("beta after end = %v, want 1", got)
	}

	m = press(t, m, runes("r"))
	if got := m.Values(); got["alpha"] != 1 || got["beta"] != 0.1 {
		t.Errorf("reset values = %v", got)
	}
}

func TestUpdate_IntegrationFailureKeepsPlots(t *testing.T) {
	m := newTestModel(t)
	before := m.Trajectory()
	eqBefore, _ := m.dyn.Equilibrium()

	m.solver.MaxSteps = 1
	m.solver.Tolerance = 1e-15
	m = press(t, m, runes("l"))

	if !errors.Is(m.Err(), dynamo.ErrTooManySteps) {
		t.Fatalf("Err() = %v, want ErrTooManySteps", m.Err())
	}
	if m.Trajectory() != before {
		t.Error("failed recompute replaced the trajectory on screen")
	}

	v := m.View()
	if !strings.Contains(v, "error:") {
		t.Error("status line does not show the error")
	}
	if !strings.Contains(v, "stale") {
		t.Error("status not marked stale after a failed recompute")
	}
	// equilibrium still describes the plotted parameters, not the new alpha
	if eq, _ := m.plotted.Equilibrium(); eq[0] != eqBefore[0] || eq[1] != eqBefore[1] {
		t.Errorf("status equilibrium = %v, want %v", eq, eqBefore)
	}

	m.solver = dynamo.DefaultConfig()
	m = press(t, m, runes("l"))
	if m.Err() != nil || m.Trajectory() == before {
		t.Errorf("recovery recompute: err %v, trajectory replaced %v", m.Err(), m.Trajectory() != before)
	}
	if strings.Contains(m.View(), "stale") {
		t.Error("stale marker kept after a successful recompute")
	}
}

type rejectParams struct{ calls int }

func (r *rejectParams) GetParams() map[string]float64 { return nil }
func (r *rejectParams) SetParam(name string, v float64) error {
	r.calls++
	return dynamo.ErrUnknownParam
}

func TestApplySliders(t *testing.T) {
	lv := config.DefaultConfig().GetModel()
	sliders := []*Slider{NewSlider(config.SliderSpecs[0], 2.5), NewSlider(config.SliderSpecs[3], 0.7)}
	if err := applySliders(lv, sliders); err != nil {
		t.Fatalf("applySliders: %v", err)
	}
	if lv.Alpha != 2.5 || lv.Gamma != 0.7 {
		t.Errorf("alpha, gamma = %v, %v, want 2.5, 0.7", lv.Alpha, lv.Gamma)
	}

	r := &rejectParams{}
	err := applySliders(r, sliders)
	if !errors.Is(err, dynamo.ErrUnknownParam) || !strings.Contains(err.Error(), "alpha") {
		t.Errorf("expected wrapped ErrUnknownParam naming alpha, got %v", err)
	}
	if r.calls != 1 {
		t.Errorf("calls = %d, want 1", r.calls)
	}
}

func TestUpdate_NoRecomputeAtBoundary(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	n := m.recomputes
	m = press(t, m, runes("h"))
	if m.recomputes != n {
		t.Error("slider at minimum should not recompute on decrement")
	}
}

func TestUpdate_FocusWraps(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != len(m.sliders)-1 {
		t.Errorf("focus = %d, want %d", m.focus, len(m.sliders)-1)
	}
	m = press(t, m, runes("j"))
	if m.focus != 0 {
		t.Errorf("focus = %d, want 0", m.focus)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestUpdate_MouseSetsSlider(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 90, Height: 40})

	top := m.slidersTop()
	m = press(t, m, tea.MouseMsg{
		X:      sliderLabelWidth + 1,
		Y:      top + 2,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	if m.focus != 2 {
		t.Errorf("focus = %d, want 2", m.focus)
	}
	if got := m.Values()["delta"]; got != 0.01 {
		t.Errorf("delta = %v, want slider minimum 0.01", got)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"prey", "predators", TimeSeriesCaption, PhaseCaption, "alpha", "gamma"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, runes("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
	m = press(t, m, runes("?"))
	if strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not dismissed")
	}
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	for range Themes {
		m = press(t, m, runes("t"))
	}
	if m.theme.Name != first {
		t.Errorf("theme after full cycle = %s, want %s", m.theme.Name, first)
	}
}

func TestPlots_Diverged(t *testing.T) {
	tr := &sim.Trajectory{
		Times:  []float64{0, 1},
		States: []dynamo.State{{math.Inf(1), math.NaN()}, {math.NaN(), math.Inf(-1)}},
	}
	if out := TimeSeriesPlot(tr, 40, 5, ThemeClassic); !strings.Contains(out, "no finite data") {
		t.Errorf("time series placeholder missing: %q", out)
	}
	if out := PhasePlot(tr, 40, 5, ThemeClassic); !strings.Contains(out, "no finite data") {
		t.Errorf("phase placeholder missing: %q", out)
	}
}
