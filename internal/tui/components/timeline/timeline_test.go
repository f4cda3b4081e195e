package timeline_test

import (
	"testing"
	"time"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tui/components/timeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func snapshotAt(t *testing.T, text string, at time.Duration) playback.Snapshot {
	t.Helper()

	cfg, err := morse.NewTimingConfig(12)
	require.NoError(t, err)
	seq, err := morse.Encode(text, cfg)
	require.NoError(t, err)

	return playback.Snapshot{
		Sequence:    seq,
		CurrentTime: at,
		ActiveIndex: seq.ActiveIndex(at),
	}
}

func TestTimeline_RendersDisplayString(t *testing.T) {
	t.Parallel()

	m := timeline.New(40)
	snap := snapshotAt(t, "SOS", -time.Second) // nothing active

	view := m.View(snap)
	assert.Contains(t, view, "··· −−− ···")
}

func TestTimeline_EmptySequence(t *testing.T) {
	t.Parallel()

	m := timeline.New(40)

	view := m.View(playback.Snapshot{ActiveIndex: -1})
	assert.Contains(t, view, "nothing to play")
}

func TestTimeline_WordSeparator(t *testing.T) {
	t.Parallel()

	m := timeline.New(40)
	snap := snapshotAt(t, "E E", -time.Second)

	assert.Contains(t, m.View(snap), "· / ·")
}

func TestTimeline_ViewIsStateless(t *testing.T) {
	t.Parallel()

	m := timeline.New(40)

	// Rendering mid-letter and then idle again gives identical output:
	// the highlight follows the snapshot, not past renders.
	idle := snapshotAt(t, "SOS", -time.Second)
	mid := snapshotAt(t, "SOS", 50*time.Millisecond)

	before := m.View(idle)
	_ = m.View(mid)
	after := m.View(idle)

	assert.Equal(t, before, after)
}

func TestTimeline_HighlightFollowsPlayhead(t *testing.T) {
	t.Parallel()

	m := timeline.New(40)

	// With Ascii color profile the styles render without escape
	// sequences, so highlighting is invisible in the output; what must
	// hold is that every position renders the same token text.
	for _, at := range []time.Duration{
		0,                       // first dot of S
		900 * time.Millisecond,  // inside O
		2650 * time.Millisecond, // final dot
	} {
		snap := snapshotAt(t, "SOS", at)
		view := m.View(snap)
		assert.Contains(t, view, "··· −−− ···", "at %v", at)
	}
}
