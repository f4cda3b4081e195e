package morse_test

import (
	"testing"
	"time"

	"github.com/alkime/sounder/internal/morse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_ActiveIndex(t *testing.T) {
	t.Parallel()

	// "SOS" at 12 wpm: dot [0,100ms), gap [100,200), dot [200,300),
	// gap [300,400), dot [400,500), letter gap [500,800), dash
	// [800,1100), ... total 2700ms.
	seq := mustEncode(t, "SOS", 12)

	tests := []struct {
		name string
		at   time.Duration
		want int
	}{
		{name: "start of first element", at: 0, want: 0},
		{name: "inside first element", at: 50 * time.Millisecond, want: 0},
		{name: "boundary belongs to the next element", at: 100 * time.Millisecond, want: 1},
		{name: "end of letter gap", at: 799 * time.Millisecond, want: 5},
		{name: "start of first dash", at: 800 * time.Millisecond, want: 6},
		{name: "last instant of the sequence", at: 2700*time.Millisecond - time.Nanosecond, want: 16},
		{name: "total duration is past the end", at: 2700 * time.Millisecond, want: -1},
		{name: "before zero", at: -time.Nanosecond, want: -1},
		{name: "far past the end", at: time.Hour, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, seq.ActiveIndex(tt.at))
		})
	}

	t.Run("empty sequence", func(t *testing.T) {
		t.Parallel()

		var empty morse.Sequence
		assert.Equal(t, -1, empty.ActiveIndex(0))
	})
}

func TestSequence_VisibleElements(t *testing.T) {
	t.Parallel()

	seq := mustEncode(t, "E E", 12)
	visible := seq.VisibleElements()

	require.Len(t, visible, 2)
	assert.Equal(t, morse.Dot, visible[0].Signal)
	assert.Equal(t, morse.Dot, visible[1].Signal)
	assert.True(t, visible[0].Start < visible[1].Start)
}

func TestTimedElement_Window(t *testing.T) {
	t.Parallel()

	el := morse.TimedElement{
		Signal:   morse.Dash,
		Start:    100 * time.Millisecond,
		Duration: 300 * time.Millisecond,
	}

	assert.Equal(t, 400*time.Millisecond, el.End())
	assert.False(t, el.Active(99*time.Millisecond))
	assert.True(t, el.Active(100*time.Millisecond))
	assert.True(t, el.Active(399*time.Millisecond))
	assert.False(t, el.Active(400*time.Millisecond), "window is half-open")
}
