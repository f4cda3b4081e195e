package playback

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/pkg/channels"
)

// defaultTickInterval samples the clock often enough that even the
// shortest element at the fastest rate (48ms dots at 25 wpm) is seen.
const defaultTickInterval = 16 * time.Millisecond

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTickInterval overrides the sampling interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Coordinator) { c.tick = d }
}

// WithClock overrides the wall-clock source. Tests use this to drive
// the timeline deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// Coordinator owns one playback session. It holds the current text and
// its encoded sequence, runs the transport state machine and, while
// playing, a sampling loop that derives the playhead position from the
// wall clock each tick. Elapsed time is always a clock difference,
// never a tick count, so position cannot drift with timer jitter.
//
// All methods are safe for concurrent use; a single mutex makes every
// transition atomic.
type Coordinator struct {
	mu sync.Mutex

	text    string
	timing  morse.TimingConfig
	seq     morse.Sequence
	state   State
	looping bool

	current  time.Duration // playhead position within the sequence
	startRef time.Time     // wall-clock anchor while playing
	active   int           // index into seq.Elements, -1 when none

	sink    Sink
	pattern Pattern // built lazily, dropped on text/speed change

	run  int // playback generation, retires stale sampling loops
	tick time.Duration
	now  func() time.Time

	events channels.Broadcaster[Event]
}

// NewCoordinator builds a coordinator for the given text and rate. A
// nil sink plays silently.
func NewCoordinator(text string, wpm int, sink Sink, opts ...Option) (*Coordinator, error) {
	cfg, err := morse.NewTimingConfig(wpm)
	if err != nil {
		return nil, err
	}

	if sink == nil {
		sink = NopSink{}
	}

	c := &Coordinator{
		text:   text,
		timing: cfg,
		state:  StateIdle,
		active: -1,
		sink:   sink,
		tick:   defaultTickInterval,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.reencodeLocked()

	return c, nil
}

// Subscribe registers ch for coordinator events with non-blocking
// delivery: a full channel misses events rather than stalling the
// sampling loop. The returned cancel removes the subscription.
func (c *Coordinator) Subscribe(ch chan<- Event) (cancel func()) {
	return c.events.Subscribe(ch)
}

// Play starts a run from the beginning, or resumes a paused one. It is
// a no-op while already playing or when there is nothing to play.
func (c *Coordinator) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

// Pause freezes the playhead exactly where the clock stands now. Only
// a playing run can pause.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// TogglePlayPause maps a single transport key onto Play or Pause.
func (c *Coordinator) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		c.pauseLocked()
	} else {
		c.playLocked()
	}
}

// Stop abandons the run and rewinds to the start. Safe in any state
// and idempotent.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.publishLocked(EventState)
}

// SetText replaces the session text. Any run in progress stops; the
// new sequence waits at zero in StateIdle. Playback never resumes on
// its own after a text change.
func (c *Coordinator) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.text = text
	c.reencodeLocked()
	c.publishLocked(EventSequence)
}

// SetWPM changes the playback rate. Like SetText it stops any run in
// progress and re-times the sequence from zero.
func (c *Coordinator) SetWPM(wpm int) error {
	cfg, err := morse.NewTimingConfig(wpm)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.timing = cfg
	c.reencodeLocked()
	c.publishLocked(EventSequence)

	return nil
}

// SetLooping flips the repeat flag without touching the run in
// progress.
func (c *Coordinator) SetLooping(loop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.looping == loop {
		return
	}

	c.looping = loop
	c.publishLocked(EventState)
}

// ToggleLooping flips the repeat flag and returns the new value.
func (c *Coordinator) ToggleLooping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.looping = !c.looping
	c.publishLocked(EventState)

	return c.looping
}

// Snapshot returns a consistent view of the session.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// playLocked dispatches Play between fresh runs and resumes.
func (c *Coordinator) playLocked() {
	if c.seq.Empty() || c.state == StatePlaying {
		return
	}

	if c.state == StatePaused {
		c.resumeLocked()
	} else {
		c.startRunLocked()
	}

	c.publishLocked(EventState)
}

// startRunLocked begins a fresh run from position zero.
func (c *Coordinator) startRunLocked() {
	c.run++
	c.state = StatePlaying
	c.current = 0
	c.startRef = c.now()
	c.active = c.seq.ActiveIndex(0)
	c.startSinkLocked()
	c.sampleLoop(c.run)
}

// resumeLocked continues a paused run. The wall-clock anchor moves so
// elapsed time picks up exactly where it froze.
func (c *Coordinator) resumeLocked() {
	c.run++
	c.state = StatePlaying
	c.startRef = c.now().Add(-c.current)
	c.active = c.seq.ActiveIndex(c.current)

	if err := c.sink.Resume(); err != nil {
		slog.Warn("sink resume failed, playback continues silently", "error", err)
	}

	c.sampleLoop(c.run)
}

func (c *Coordinator) pauseLocked() {
	if c.state != StatePlaying {
		return
	}

	c.run++ // retire the sampling loop
	c.current = c.now().Sub(c.startRef)
	if c.current > c.seq.TotalDuration {
		c.current = c.seq.TotalDuration
	}
	c.active = c.seq.ActiveIndex(c.current)
	c.state = StatePaused

	if err := c.sink.Pause(); err != nil {
		slog.Warn("sink pause failed", "error", err)
	}

	c.publishLocked(EventState)
}

// stopLocked abandons any run and rewinds to the start.
func (c *Coordinator) stopLocked() {
	c.run++
	c.state = StateIdle
	c.current = 0
	c.active = -1

	if err := c.sink.Stop(); err != nil {
		slog.Warn("sink stop failed", "error", err)
	}
}

// finishLocked ends a natural run: the playhead clamps to the total
// duration, the highlight clears and the sink winds down.
func (c *Coordinator) finishLocked() {
	c.run++
	c.state = StateFinished
	c.current = c.seq.TotalDuration
	c.active = -1

	if err := c.sink.Stop(); err != nil {
		slog.Warn("sink stop failed", "error", err)
	}

	c.publishLocked(EventState)
}

// reencodeLocked rebuilds the sequence for the current text and timing
// and drops the cached sink pattern.
func (c *Coordinator) reencodeLocked() {
	seq, err := morse.Encode(c.text, c.timing)
	if err != nil {
		// Unreachable with a validated config; keep the old sequence.
		slog.Error("encode failed", "error", err)
		return
	}

	c.seq = seq
	c.pattern = nil
}

// startSinkLocked hands the sink its pattern and starts it from the
// top. Failures are logged and otherwise ignored: the clock drives
// timing, and the visual side must stay correct without audio.
func (c *Coordinator) startSinkLocked() {
	if c.pattern == nil {
		p, err := c.sink.BuildPattern(c.seq)
		switch {
		case errors.Is(err, ErrEmptyPattern):
			slog.Debug("nothing audible in sequence, sink stays idle")
			return
		case err != nil:
			slog.Warn("sink pattern build failed, playing silently", "error", err)
			return
		}
		c.pattern = p
	}

	err := c.sink.Play(c.pattern, func() {
		slog.Debug("sink pattern completed")
	})
	if err != nil {
		slog.Warn("sink play failed, playing silently", "error", err)
	}
}

// sampleLoop runs the goroutine that maps wall time onto the sequence.
// gen identifies the run; the loop exits as soon as the coordinator
// has moved on to another run or out of StatePlaying.
func (c *Coordinator) sampleLoop(gen int) {
	go func() {
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()

		for range ticker.C {
			if !c.advance(gen) {
				return
			}
		}
	}()
}

// advance moves the playhead to the current wall-clock position and
// handles finish and loop transitions. It reports whether the loop
// should keep ticking.
func (c *Coordinator) advance(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.run || c.state != StatePlaying {
		return false
	}

	c.current = c.now().Sub(c.startRef)

	if c.current >= c.seq.TotalDuration {
		if c.looping {
			// Seamless restart: back to zero without leaving
			// StatePlaying. The sink pattern starts over.
			c.current = 0
			c.startRef = c.now()
			c.active = c.seq.ActiveIndex(0)
			c.startSinkLocked()
			c.publishLocked(EventState)
			return true
		}

		c.finishLocked()
		return false
	}

	c.active = c.seq.ActiveIndex(c.current)
	c.publishLocked(EventTick)

	return true
}

func (c *Coordinator) publishLocked(kind EventKind) {
	c.events.Publish(Event{Kind: kind, Snapshot: c.snapshotLocked()})
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		State:       c.state,
		Text:        c.text,
		WPM:         c.timing.WPM,
		Sequence:    c.seq,
		CurrentTime: c.current,
		ActiveIndex: c.active,
		Progress:    c.progressLocked(),
		Looping:     c.looping,
	}
}

func (c *Coordinator) progressLocked() float64 {
	total := c.seq.TotalDuration
	if total <= 0 {
		return 0
	}

	p := float64(c.current) / float64(total)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}

	return p
}

// Snapshot is a consistent copy of a coordinator's observable state,
// safe to read after the coordinator has moved on.
type Snapshot struct {
	State       State
	Text        string
	WPM         int
	Sequence    morse.Sequence
	CurrentTime time.Duration
	ActiveIndex int
	Progress    float64
	Looping     bool
}

// CanPlay reports whether Play would start or resume a run.
func (s Snapshot) CanPlay() bool {
	return !s.Sequence.Empty()
}

// ActiveElement returns the element under the playhead, if any.
func (s Snapshot) ActiveElement() (morse.TimedElement, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Sequence.Elements) {
		return morse.TimedElement{}, false
	}

	return s.Sequence.Elements[s.ActiveIndex], true
}
