package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/predprey/internal/config"
)

const (
	sliderLabelWidth = 7
	sliderValueWidth = 8
	coarseDivisions  = 100
	fineDivisions    = 1000
)

// Slider is a bounded numeric control bound to one model parameter. Its
// value can never leave [Spec.Min, Spec.Max].
type Slider struct {
	Spec    config.SliderSpec
	Value   float64
	Initial float64
}

func NewSlider(spec config.SliderSpec, initial float64) *Slider {
	v := spec.Clamp(initial)
	return &Slider{Spec: spec, Value: v, Initial: v}
}

// Set clamps v into range and reports whether the value changed.
func (s *Slider) Set(v float64) bool {
	v = s.Spec.Clamp(v)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// Nudge moves the slider by n divisions of its range.
func (s *Slider) Nudge(n float64, divisions int) bool {
	step := (s.Spec.Max - s.Spec.Min) / float64(divisions)
	return s.Set(s.Value + n*step)
}

func (s *Slider) Reset() bool { return s.Set(s.Initial) }

// Ratio is the slider position in [0, 1].
func (s *Slider) Ratio() float64 {
	span := s.Spec.Max - s.Spec.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Spec.Min) / span
}

func (s *Slider) SetRatio(r float64) bool {
	r = math.Max(0, math.Min(1, r))
	return s.Set(s.Spec.Min + r*(s.Spec.Max-s.Spec.Min))
}

// trackWidth is the number of cells the track occupies in a row of the
// given total width.
func trackWidth(total int) int {
	w := total - sliderLabelWidth - sliderValueWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}

// Render draws "name  [━━━━●─────]  1.000". The track starts at column
// sliderLabelWidth+1 of the returned row.
func (s *Slider) Render(total int, focused bool, th Theme) string {
	tw := trackWidth(total)
	pos := int(math.Round(s.Ratio() * float64(tw-1)))

	var track strings.Builder
	for i := 0; i < tw; i++ {
		switch {
		case i == pos:
			track.WriteRune('●')
		case i < pos:
			track.WriteRune('━')
		default:
			track.WriteRune('─')
		}
	}

	label := fmt.Sprintf("%-*s", sliderLabelWidth, s.Spec.Name)
	value := fmt.Sprintf("%*.3f", sliderValueWidth, s.Value)

	labelStyle := lipgloss.NewStyle().Foreground(th.Muted)
	trackStyle := lipgloss.NewStyle().Foreground(th.Muted)
	if focused {
		labelStyle = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		trackStyle = lipgloss.NewStyle().Foreground(th.Accent)
	}

	return labelStyle.Render(label) + "[" + trackStyle.Render(track.String()) + "]" + lipgloss.NewStyle().Foreground(th.Text).Render(value)
}

// ratioAt maps a column inside a rendered slider row to a track position.
// ok is false when the column is outside the track.
func ratioAt(col, total int) (r float64, ok bool) {
	tw := trackWidth(total)
	start := sliderLabelWidth + 1
	if col < start || col >= start+tw {
		return 0, false
	}
	return float64(col-start) / float64(tw-1), true
}
