package tui

import (
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/pkg/uictl"
)

// Controls provides the TUI's access to the playback session. The
// knobs and the stepper mutate it; Snapshot reads its current state.
// Levels may be nil when no audio backend is attached, which hides
// the scope trace.
type Controls struct {
	PlayPause uictl.Knob          // on while playing
	Loop      uictl.Knob          // repeat flag
	Speed     uictl.Stepper[int]  // words per minute
	Levels    uictl.Levels[int16] // recent output samples

	Snapshot func() playback.Snapshot
	Stop     func()
	Apply    func(text string)
}
