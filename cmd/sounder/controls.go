package main

import (
	"fmt"
	"log/slog"

	"github.com/alkime/sounder/internal/config"
	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tone"
	"github.com/alkime/sounder/internal/tui"
	"github.com/alkime/sounder/pkg/uictl"
)

// session bundles the playback pipeline a command drives: the
// coordinator, the audio sink behind it, and the sink's level tap for
// the scope (nil for the silent engine).
type session struct {
	coord     *playback.Coordinator
	levels    uictl.Levels[int16]
	closeSink func()
}

// newSession assembles synth, sink and coordinator from config.
func newSession(text string, cfg *config.Config) (*session, error) {
	if err := validateWPM(cfg.WPM); err != nil {
		return nil, err
	}

	sink, closeSink, levels, err := buildSink(cfg.Engine, newSynth(cfg))
	if err != nil {
		return nil, err
	}

	coord, err := playback.NewCoordinator(text, cfg.WPM, sink)
	if err != nil {
		closeSink()
		return nil, fmt.Errorf("failed to create playback coordinator: %w", err)
	}

	if cfg.Loop {
		coord.SetLooping(true)
	}

	return &session{
		coord:     coord,
		levels:    levels,
		closeSink: closeSink,
	}, nil
}

// Close stops playback and releases the audio backend.
func (s *session) Close() {
	s.coord.Stop()
	s.closeSink()
}

// Controls exposes the session to the TUI.
func (s *session) Controls() tui.Controls {
	return tui.Controls{
		PlayPause: transportKnob{coord: s.coord},
		Loop:      loopKnob{coord: s.coord},
		Speed:     wpmStepper{coord: s.coord},
		Levels:    s.levels,
		Snapshot:  s.coord.Snapshot,
		Stop:      s.coord.Stop,
		Apply:     s.coord.SetText,
	}
}

func newSynth(cfg *config.Config) tone.Synth {
	synth := tone.NewSynth()
	synth.SampleRate = cfg.SampleRate
	synth.Frequency = cfg.ToneHz
	synth.Volume = cfg.Volume

	return synth
}

// buildSink picks the audio backend for the configured engine. The
// returned cleanup releases whatever the backend allocated; the levels
// tap is nil when there is no audio output to observe.
func buildSink(engine string, synth tone.Synth) (playback.Sink, func(), uictl.Levels[int16], error) {
	switch engine {
	case config.EngineDevice:
		s := tone.NewDeviceSink(synth)
		return s, s.Close, sampleLevels{recent: s.Recent}, nil

	case config.EngineSpeaker:
		s := tone.NewSpeakerSink(synth)
		return s, func() {}, sampleLevels{recent: s.Recent}, nil

	case config.EngineNone:
		return playback.NopSink{}, func() {}, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown engine %q: must be device, speaker or none", engine)
	}
}

// transportKnob implements uictl.Knob over the coordinator transport:
// on while playing.
type transportKnob struct {
	coord *playback.Coordinator
}

func (tk transportKnob) Read() bool {
	return tk.coord.Snapshot().State == playback.StatePlaying
}

func (tk transportKnob) On() {
	tk.coord.Play()
}

func (tk transportKnob) Off() {
	tk.coord.Pause()
}

func (tk transportKnob) Toggle() {
	tk.coord.TogglePlayPause()
}

// loopKnob implements uictl.Knob over the coordinator's repeat flag.
type loopKnob struct {
	coord *playback.Coordinator
}

func (lk loopKnob) Read() bool {
	return lk.coord.Snapshot().Looping
}

func (lk loopKnob) On() {
	lk.coord.SetLooping(true)
}

func (lk loopKnob) Off() {
	lk.coord.SetLooping(false)
}

func (lk loopKnob) Toggle() {
	lk.coord.ToggleLooping()
}

// wpmStepper implements uictl.Stepper[int] over the coordinator's
// words-per-minute rate, clamped to the practical range.
type wpmStepper struct {
	coord *playback.Coordinator
}

func (ws wpmStepper) Read() int {
	return ws.coord.Snapshot().WPM
}

func (ws wpmStepper) Inc() int { return ws.step(1) }
func (ws wpmStepper) Dec() int { return ws.step(-1) }

func (ws wpmStepper) step(delta int) int {
	wpm := ws.coord.Snapshot().WPM + delta
	wpm = max(morse.MinWPM, min(morse.MaxWPM, wpm))

	if err := ws.coord.SetWPM(wpm); err != nil {
		slog.Error("wpmStepper step error", "error", err)
	}

	return ws.coord.Snapshot().WPM
}

// sampleLevels implements uictl.Levels[int16] for the output scope.
type sampleLevels struct {
	recent func(n int) []int16
}

// Read returns recent output samples for visualization.
// Returns approximately 50ms of samples at 44.1kHz (2205 samples).
func (sl sampleLevels) Read() []int16 {
	return sl.recent(2205)
}
