package tui_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 100 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	})
}

// sessionStub stands in for a playback coordinator behind the Controls
// seam. Key handlers mutate it, the snapshot tick reads it back.
type sessionStub struct {
	mu      sync.Mutex
	snap    playback.Snapshot
	stops   int
	applies []string
}

func newSessionStub(t *testing.T, text string) *sessionStub {
	t.Helper()

	s := &sessionStub{}
	s.snap = playback.Snapshot{
		State:       playback.StateIdle,
		WPM:         morse.DefaultWPM,
		ActiveIndex: -1,
	}
	s.apply(text)

	return s
}

func (s *sessionStub) snapshot() playback.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *sessionStub) apply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := morse.NewTimingConfig(s.snap.WPM)
	if err != nil {
		panic(err)
	}
	seq, err := morse.Encode(text, cfg)
	if err != nil {
		panic(err)
	}

	s.snap.Text = text
	s.snap.Sequence = seq
	s.snap.State = playback.StateIdle
	s.snap.CurrentTime = 0
	s.snap.ActiveIndex = -1
}

func (s *sessionStub) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.snap.State = playback.StateIdle
	s.snap.CurrentTime = 0
	s.snap.ActiveIndex = -1
}

func (s *sessionStub) stopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

func (s *sessionStub) applied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.applies...)
}

type playKnob struct{ s *sessionStub }

func (k playKnob) Read() bool {
	return k.s.snapshot().State == playback.StatePlaying
}

func (k playKnob) On()  { k.set(playback.StatePlaying) }
func (k playKnob) Off() { k.set(playback.StatePaused) }

func (k playKnob) Toggle() {
	if k.Read() {
		k.Off()
	} else {
		k.On()
	}
}

func (k playKnob) set(st playback.State) {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()
	k.s.snap.State = st
}

type loopKnob struct{ s *sessionStub }

func (k loopKnob) Read() bool {
	return k.s.snapshot().Looping
}

func (k loopKnob) On()  { k.set(true) }
func (k loopKnob) Off() { k.set(false) }

func (k loopKnob) Toggle() {
	k.set(!k.Read())
}

func (k loopKnob) set(loop bool) {
	k.s.mu.Lock()
	defer k.s.mu.Unlock()
	k.s.snap.Looping = loop
}

type speedStepper struct{ s *sessionStub }

func (d speedStepper) Read() int {
	return d.s.snapshot().WPM
}

func (d speedStepper) Inc() int { return d.step(1) }
func (d speedStepper) Dec() int { return d.step(-1) }

func (d speedStepper) step(delta int) int {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	wpm := d.s.snap.WPM + delta
	wpm = max(morse.MinWPM, min(morse.MaxWPM, wpm))
	d.s.snap.WPM = wpm

	return wpm
}

type stubLevels struct{ samples []int16 }

func (l stubLevels) Read() []int16 { return l.samples }

func stubControls(s *sessionStub) tui.Controls {
	return tui.Controls{
		PlayPause: playKnob{s: s},
		Loop:      loopKnob{s: s},
		Speed:     speedStepper{s: s},
		Levels:    stubLevels{samples: []int16{0, 12000, 24000, 12000, 0}},
		Snapshot:  s.snapshot,
		Stop:      s.stop,
		Apply: func(text string) {
			s.mu.Lock()
			s.applies = append(s.applies, text)
			s.mu.Unlock()
			s.apply(text)
		},
	}
}

func newTestPlayer(t *testing.T, text string) (*teatest.TestModel, *sessionStub) {
	t.Helper()

	s := newSessionStub(t, text)
	tm := teatest.NewTestModel(t, tui.New(stubControls(s)), teatest.WithInitialTermSize(80, 24))

	return tm, s
}

func TestPlayer_InitialView(t *testing.T) {
	tm, _ := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	checker.checkString(t, tm, "sounder")
	checker.checkString(t, tm, "Ready")
	checker.checkString(t, tm, "15 wpm")
	checker.checkString(t, tm, "··· −−− ···")
	checker.checkString(t, tm, "[space] play/pause")
}

func TestPlayer_EmptyTextPrompt(t *testing.T) {
	tm, _ := newTestPlayer(t, "")
	checker := defaultChecker()

	checker.checkString(t, tm, "Enter some text to play")
	checker.checkString(t, tm, "nothing to play")
}

func TestPlayer_PlayPauseKey(t *testing.T) {
	tm, _ := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	checker.checkString(t, tm, "Ready")

	tm.Send(tea.KeyMsg{Type: tea.KeySpace})
	checker.checkString(t, tm, "Playing")

	tm.Send(tea.KeyMsg{Type: tea.KeySpace})
	checker.checkString(t, tm, "Paused")
}

func TestPlayer_StopKey(t *testing.T) {
	tm, s := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	tm.Send(tea.KeyMsg{Type: tea.KeySpace})
	checker.checkString(t, tm, "Playing")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	checker.checkString(t, tm, "Ready")

	require.Eventually(t, func() bool {
		return s.stopCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlayer_LoopKey(t *testing.T) {
	tm, _ := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	checker.checkString(t, tm, "looping")
}

func TestPlayer_SpeedKeys(t *testing.T) {
	tm, _ := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	checker.checkString(t, tm, "15 wpm")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	checker.checkString(t, tm, "16 wpm")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	checker.checkString(t, tm, "14 wpm")
}

func TestPlayer_EditText(t *testing.T) {
	tm, s := newTestPlayer(t, "")
	checker := defaultChecker()

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	checker.checkString(t, tm, "[enter] apply")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("HI")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// H = 4 dots, I = 2 dots.
	checker.checkString(t, tm, "···· ··")

	require.Eventually(t, func() bool {
		applied := s.applied()
		return len(applied) == 1 && applied[0] == "HI"
	}, time.Second, 10*time.Millisecond)
}

func TestPlayer_EditCancelKeepsText(t *testing.T) {
	tm, s := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	checker.checkString(t, tm, "[esc] cancel")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("XYZ")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	checker.checkString(t, tm, "··· −−− ···")
	require.Empty(t, s.applied())
}

func TestPlayer_QuitStopsPlayback(t *testing.T) {
	tm, s := newTestPlayer(t, "SOS")
	checker := defaultChecker()

	tm.Send(tea.KeyMsg{Type: tea.KeySpace})
	checker.checkString(t, tm, "Playing")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	require.GreaterOrEqual(t, s.stopCount(), 1)
}
