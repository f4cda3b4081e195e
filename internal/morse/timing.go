package morse

import (
	"errors"
	"time"
)

// unitsPerWord is the length of the reference word "PARIS", including
// its trailing word gap, in timing units. It ties a words-per-minute
// rate to the duration of one unit.
const unitsPerWord = 50

// Practical WPM range for transport controls. TimingConfig itself
// accepts any positive rate; clamping to this range is the caller's
// decision.
const (
	MinWPM     = 3
	MaxWPM     = 25
	DefaultWPM = 15
)

// ErrInvalidWPM marks a non-positive words-per-minute rate.
var ErrInvalidWPM = errors.New("wpm must be positive")

// TimingConfig derives element durations from a words-per-minute rate
// using the PARIS convention: one unit lasts 60/(50*wpm) seconds.
//
// All derived durations are integer nanoseconds computed by
// multiplying the same truncated unit, so ratios between signals hold
// exactly: a dash is always precisely three dots.
type TimingConfig struct {
	WPM int
}

// NewTimingConfig builds a validated timing config.
func NewTimingConfig(wpm int) (TimingConfig, error) {
	cfg := TimingConfig{WPM: wpm}
	if err := cfg.Validate(); err != nil {
		return TimingConfig{}, err
	}

	return cfg, nil
}

// Validate returns ErrInvalidWPM for rates that cannot produce a
// timeline.
func (c TimingConfig) Validate() error {
	if c.WPM <= 0 {
		return ErrInvalidWPM
	}

	return nil
}

// Unit returns the duration of one timing unit at this rate.
func (c TimingConfig) Unit() time.Duration {
	return time.Duration(float64(time.Second) * 60 / (unitsPerWord * float64(c.WPM)))
}

// Duration returns the duration of the given signal at this rate.
func (c TimingConfig) Duration(s Signal) time.Duration {
	return time.Duration(s.Units()) * c.Unit()
}
