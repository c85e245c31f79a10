// Package viz provides the terminal view of the predator-prey model.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: time-series plot, phase portrait and four parameter sliders
//   - [Slider]: bounded control for one model parameter
//   - [Canvas]: Braille-based pixel canvas used for the phase portrait
//   - Theme selection with 3 built-in color schemes
//
// [TimeSeriesPlot] and [PhasePlot] are also used by the non-interactive
// plot command.
//
// # Key Bindings
//
//	Tab/J, Shift+Tab/K - Focus next/previous slider
//	L/Right, H/Left    - Move slider by 1% of its range
//	Shift+L, Shift+H   - Move slider by 0.1% of its range
//	Home/End           - Slider minimum/maximum
//	R                  - Reset all sliders
//	T                  - Cycle color themes
//	?                  - Show help overlay
//
// Clicking on a slider track sets the slider to that position.
package viz
