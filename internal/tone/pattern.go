package tone

import (
	"encoding/binary"
	"time"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
)

// Pattern is a fully rendered sequence: one contiguous mono S16 sample
// buffer covering every element, gaps included, so sample position and
// sequence time stay aligned. Patterns are immutable once built and
// replayed from the top on every run.
type Pattern struct {
	samples  []int16
	duration time.Duration
	rate     int
}

// NewPattern renders seq with the given synth. Sequences with nothing
// audible return playback.ErrEmptyPattern; silence needs no sink.
func NewPattern(s Synth, seq morse.Sequence) (*Pattern, error) {
	if len(seq.VisibleElements()) == 0 {
		return nil, playback.ErrEmptyPattern
	}

	samples := make([]int16, 0, s.SampleCount(seq.TotalDuration))
	for _, el := range seq.Elements {
		samples = append(samples, s.RenderSignal(el.Signal, el.Duration)...)
	}

	return &Pattern{
		samples:  samples,
		duration: seq.TotalDuration,
		rate:     s.SampleRate,
	}, nil
}

func (p *Pattern) Duration() time.Duration { return p.duration }

func (p *Pattern) SampleRate() int { return p.rate }

// Samples returns the rendered buffer. Callers must not modify it.
func (p *Pattern) Samples() []int16 { return p.samples }

func (p *Pattern) SampleCount() int { return len(p.samples) }

// FillS16LE writes samples starting at pos into out as little-endian
// signed 16-bit PCM, zero-filling whatever the pattern cannot cover,
// and returns the number of samples written. This is the exact shape
// an output device callback asks for.
func (p *Pattern) FillS16LE(pos int, out []byte) int {
	frames := len(out) / 2

	n := 0
	if pos >= 0 && pos < len(p.samples) {
		n = min(frames, len(p.samples)-pos)
	}

	for i := range n {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(p.samples[pos+i]))
	}
	clear(out[n*2:])

	return n
}
