package tone

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// SpeakerSink plays patterns through the beep speaker mixer. Compared
// to DeviceSink it shares the output device with anything else using
// the mixer, at the cost of beep's buffering latency.
type SpeakerSink struct {
	synth Synth
	ring  *Ring

	mu          sync.Mutex
	initialized bool
	ctrl        *beep.Ctrl
}

func NewSpeakerSink(synth Synth) *SpeakerSink {
	return &SpeakerSink{
		synth: synth,
		ring:  NewRing(ringCapacity),
	}
}

func (s *SpeakerSink) BuildPattern(seq morse.Sequence) (playback.Pattern, error) {
	return NewPattern(s.synth, seq)
}

func (s *SpeakerSink) Play(p playback.Pattern, done func()) error {
	pattern, ok := p.(*Pattern)
	if !ok {
		return fmt.Errorf("pattern %T was not built by this sink", p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initSpeakerLocked(); err != nil {
		return err
	}

	// Drop whatever run is still on the mixer before starting over.
	speaker.Clear()
	s.ring.Clear()

	s.ctrl = &beep.Ctrl{Streamer: &patternStreamer{
		samples: pattern.Samples(),
		ring:    s.ring,
	}}

	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		if done != nil {
			// Off the mixer goroutine, so done may call back into
			// the speaker without deadlocking.
			go done()
		}
	})))

	return nil
}

func (s *SpeakerSink) Pause() error {
	return s.setPaused(true)
}

func (s *SpeakerSink) Resume() error {
	return s.setPaused(false)
}

func (s *SpeakerSink) setPaused(paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return nil
	}

	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()

	return nil
}

func (s *SpeakerSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return nil
	}

	speaker.Clear()
	s.ring.Clear()
	s.ctrl = nil

	return nil
}

// Recent returns the newest samples handed to the mixer, for waveform
// display.
func (s *SpeakerSink) Recent(n int) []int16 {
	return s.ring.Recent(n)
}

func (s *SpeakerSink) initSpeakerLocked() error {
	if s.initialized {
		return nil
	}

	sr := beep.SampleRate(s.synth.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("%w: %w", playback.ErrSinkUnavailable, err)
	}
	s.initialized = true

	return nil
}

// patternStreamer adapts a mono S16 sample buffer to beep's stereo
// float frames, duplicating the channel and scaling to [-1, 1].
type patternStreamer struct {
	samples []int16
	ring    *Ring
	pos     int
}

func (ps *patternStreamer) Stream(out [][2]float64) (n int, ok bool) {
	if ps.pos >= len(ps.samples) {
		return 0, false
	}

	n = min(len(out), len(ps.samples)-ps.pos)
	for i := range n {
		value := float64(ps.samples[ps.pos+i]) / math.MaxInt16
		out[i][0] = value
		out[i][1] = value
	}

	if ps.ring != nil {
		ps.ring.Write(ps.samples[ps.pos : ps.pos+n])
	}
	ps.pos += n

	return n, true
}

func (ps *patternStreamer) Err() error { return nil }
