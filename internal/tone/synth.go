// Package tone renders timed Morse sequences into audible sine-wave
// audio and plays it through one of two interchangeable backends: a
// raw output device (malgo) or the beep speaker mixer. Both satisfy
// playback.Sink, so the playback coordinator never knows which one it
// is driving.
package tone

import (
	"math"
	"time"

	"github.com/alkime/sounder/internal/morse"
)

const (
	// DefaultSampleRate is the rendering rate in Hz.
	DefaultSampleRate = 44100
	// DefaultFrequency is the standard Morse practice tone in Hz.
	DefaultFrequency = 700
	// DefaultVolume scales the waveform to half amplitude.
	DefaultVolume = 0.5
)

// Synth renders individual signals into mono S16 samples. The zero
// value is unusable; construct with NewSynth and override fields as
// needed.
type Synth struct {
	SampleRate int
	Frequency  float64
	Volume     float64
}

func NewSynth() Synth {
	return Synth{
		SampleRate: DefaultSampleRate,
		Frequency:  DefaultFrequency,
		Volume:     DefaultVolume,
	}
}

// SampleCount converts a duration to a whole number of samples at the
// synth's rate.
func (s Synth) SampleCount(d time.Duration) int {
	return int(math.Round(d.Seconds() * float64(s.SampleRate)))
}

// RenderSignal produces the samples for one timed signal: a faded sine
// burst for audible signals, silence for gaps. The fade ramp at each
// end avoids clicks at element boundaries.
func (s Synth) RenderSignal(sig morse.Signal, d time.Duration) []int16 {
	n := s.SampleCount(d)
	samples := make([]int16, n)

	if !sig.Audible() {
		return samples
	}

	// 5% fade on each end, at least 10 samples, never overlapping.
	fade := n / 20
	if fade < 10 {
		fade = 10
	}
	if fade > n/2 {
		fade = n / 2
	}

	for i := range n {
		phase := 2 * math.Pi * s.Frequency * float64(i) / float64(s.SampleRate)
		value := math.Sin(phase)

		envelope := 1.0
		if i < fade {
			envelope = float64(i) / float64(fade)
		} else if i >= n-fade {
			envelope = float64(n-i) / float64(fade)
		}

		samples[i] = int16(value * envelope * s.Volume * math.MaxInt16)
	}

	return samples
}
