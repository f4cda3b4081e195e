package playback

import (
	"errors"
	"time"

	"github.com/alkime/sounder/internal/morse"
)

var (
	// ErrEmptyPattern is returned by BuildPattern when the sequence has
	// no audible elements, so there is nothing for a sink to render.
	ErrEmptyPattern = errors.New("sequence has no audible elements")

	// ErrSinkUnavailable marks failures to reach an output device.
	ErrSinkUnavailable = errors.New("sink unavailable")
)

// Pattern is a sink-specific rendering of a sequence, built once per
// text/speed combination and replayed on every run.
type Pattern interface {
	Duration() time.Duration
}

// Sink renders the audible side of playback: a tone generator, a
// haptics bridge, or nothing at all. Implementations must tolerate
// transport calls in any order; Pause, Resume and Stop are no-ops when
// nothing is playing.
//
// Sink errors never stop a run. The coordinator logs them and keeps
// its timeline going, so the visual side stays correct when the output
// device is gone.
type Sink interface {
	// BuildPattern renders the sequence into a replayable pattern.
	BuildPattern(seq morse.Sequence) (Pattern, error)

	// Play starts the pattern from its beginning, restarting it if it
	// is already playing. done, if non-nil, is called once when the
	// pattern ends on its own; it may arrive on any goroutine and is
	// informational only.
	Play(p Pattern, done func()) error

	Pause() error
	Resume() error
	Stop() error
}

// NopSink discards everything. It keeps the coordinator fully
// functional when no audio backend is available.
type NopSink struct{}

type nopPattern struct {
	d time.Duration
}

func (p nopPattern) Duration() time.Duration { return p.d }

func (NopSink) BuildPattern(seq morse.Sequence) (Pattern, error) {
	return nopPattern{d: seq.TotalDuration}, nil
}

func (NopSink) Play(Pattern, func()) error { return nil }
func (NopSink) Pause() error               { return nil }
func (NopSink) Resume() error              { return nil }
func (NopSink) Stop() error                { return nil }
