package scope_test

import (
	"strings"
	"testing"

	"github.com/alkime/sounder/internal/tui/components/scope"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// mockLevels implements uictl.Levels[int16] for testing.
type mockLevels struct {
	samples []int16
}

func (m *mockLevels) Read() []int16 {
	return m.samples
}

func TestScope_EmptyView(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: nil}, 5, 1)

	assert.Contains(t, m.View(), "▁▁▁▁▁")
}

func TestScope_NilLevels(t *testing.T) {
	t.Parallel()

	m := scope.New(nil, 5, 1)

	assert.Contains(t, m.View(), "▁▁▁▁▁")
}

func TestScope_SilentOutput(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{0, 0, 0, 0, 0}}, 5, 1)

	// Silence renders as empty columns.
	assert.Contains(t, m.View(), "     ")
}

func TestScope_MaxAmplitude(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{32767, 32767, 32767, 32767, 32767}}, 5, 1)

	assert.Contains(t, m.View(), "█████")
}

func TestScope_VaryingAmplitude(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{0, 8000, 32767, 8000, 0}}, 5, 1)

	view := []rune(m.View())
	require.GreaterOrEqual(t, len(view), 5)
	assert.NotEqual(t, view[0], view[2], "middle should be different from edges")
}

func TestScope_NegativeAmplitude(t *testing.T) {
	t.Parallel()

	// Negative swings count as positive amplitude.
	m := scope.New(&mockLevels{samples: []int16{-32768, -32768, -32768}}, 3, 1)

	assert.Contains(t, m.View(), "███")
}

func TestScope_BucketsWideInput(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = 20000
	}

	m := scope.New(&mockLevels{samples: samples}, 10, 1)

	require.GreaterOrEqual(t, len([]rune(m.View())), 10)
}

func TestScope_FewerSamplesThanWidth(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{32767, 32767, 32767}}, 10, 1)

	require.GreaterOrEqual(t, len([]rune(m.View())), 10)
}

func TestScope_MultiRow(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{32767, 16000, 8000, 4000, 0}}, 5, 3)

	view := m.View()
	assert.Contains(t, view, "\n")
	assert.Len(t, strings.Split(view, "\n"), 3)
}

func TestScope_HeightZeroDefaultsToOne(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{32767}}, 5, 0)

	view := m.View()
	assert.NotEmpty(t, view)
	assert.NotContains(t, view, "\n")
}

func TestScope_TickLoop(t *testing.T) {
	t.Parallel()

	m := scope.New(&mockLevels{samples: []int16{1000, 2000, 3000}}, 5, 1)

	assert.NotNil(t, m.Init())

	newM, cmd := m.Update(scope.TickMsg{})
	assert.NotNil(t, cmd)
	assert.NotNil(t, newM)
}
