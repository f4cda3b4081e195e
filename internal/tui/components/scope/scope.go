// Package scope provides a TUI component for visualizing tone output.
package scope

import (
	"math"
	"strings"
	"time"

	"github.com/alkime/sounder/internal/tui/style"
	"github.com/alkime/sounder/pkg/uictl"

	tea "github.com/charmbracelet/bubbletea"
)

// Block characters for amplitude visualization (8 levels, bottom to top).
// Index 0 = empty (space), 1-8 = increasing fill levels.
const blockChars = " ▁▂▃▄▅▆▇█"

// TickMsg triggers a scope redraw.
type TickMsg struct{}

// Model displays an oscilloscope-style view of the samples most
// recently sent to the audio output (left=older, right=newer). It
// reads from a Levels control each tick, so silence simply flattens
// the trace.
type Model struct {
	levels uictl.Levels[int16]
	width  int
	height int
}

// New creates a scope that renders width columns over height rows.
// Samples are bucketed to fit the display width.
func New(levels uictl.Levels[int16], width, height int) Model {
	if height < 1 {
		height = 1
	}

	return Model{
		levels: levels,
		width:  width,
		height: height,
	}
}

// SetWidth returns a copy resized to the given column count.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Init returns the initial tick command.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick messages for animation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, m.tick()
	}

	return m, nil
}

// View renders the scope trace.
func (m Model) View() string {
	if m.levels == nil {
		return m.renderEmpty()
	}

	samples := m.levels.Read()
	if len(samples) == 0 {
		return m.renderEmpty()
	}

	return m.renderTrace(samples)
}

// tick schedules the next redraw at ~20 FPS.
func (m Model) tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) renderTrace(samples []int16) string {
	levels := m.columnLevels(samples)
	runes := []rune(blockChars)

	var sb strings.Builder

	for row := range m.height {
		if row > 0 {
			sb.WriteString("\n")
		}

		var rowSB strings.Builder

		for col := range m.width {
			rowSB.WriteRune(runes[m.blockIndexForRow(levels[col], row)])
		}

		sb.WriteString(style.Progress.Render(rowSB.String()))
	}

	return sb.String()
}

// columnLevels buckets the samples into width columns and maps each
// bucket's peak amplitude to a level from 0 to height*8.
func (m Model) columnLevels(samples []int16) []int {
	levels := make([]int, m.width)
	bucketSize := max(1, len(samples)/m.width)
	maxLevel := m.height * 8

	for col := range m.width {
		start := col * bucketSize
		if start >= len(samples) {
			levels[col] = 0

			continue
		}

		end := min(start+bucketSize, len(samples))
		levels[col] = amplitudeToLevel(maxAbsAmplitude(samples[start:end]), maxLevel)
	}

	return levels
}

// blockIndexForRow returns the block character index (0-8) for a given
// column level at a row. Row 0 is the top, row height-1 the bottom;
// each row covers 8 levels of the column's total.
func (m Model) blockIndexForRow(level, row int) int {
	rowFromBottom := m.height - 1 - row
	fill := level - rowFromBottom*8

	if fill <= 0 {
		return 0
	}
	if fill >= 8 {
		return 8
	}

	return fill
}

// renderEmpty draws a flat baseline when there is nothing to show.
func (m Model) renderEmpty() string {
	var sb strings.Builder

	for row := range m.height {
		if row > 0 {
			sb.WriteString("\n")
		}

		var rowSB strings.Builder

		for range m.width {
			if row == m.height-1 {
				rowSB.WriteRune('▁')
			} else {
				rowSB.WriteRune(' ')
			}
		}

		sb.WriteString(style.Muted.Render(rowSB.String()))
	}

	return sb.String()
}

// maxAbsAmplitude returns the peak absolute amplitude in the slice.
func maxAbsAmplitude(samples []int16) int16 {
	var peak int16

	for _, s := range samples {
		// -32768 has no positive int16 equivalent.
		if s == math.MinInt16 {
			return math.MaxInt16
		}

		if s < 0 {
			s = -s
		}

		if s > peak {
			peak = s
		}
	}

	return peak
}

// amplitudeToLevel maps an amplitude (0-32767) to a display level
// (0-maxLevel). Square-root scaling keeps quiet output visible.
func amplitudeToLevel(amp int16, maxLevel int) int {
	if amp == 0 {
		return 0
	}

	normalized := float64(amp) / math.MaxInt16
	scaled := math.Sqrt(normalized) * float64(maxLevel)

	return min(int(scaled), maxLevel)
}
