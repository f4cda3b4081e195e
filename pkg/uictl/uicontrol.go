// Package uictl defines small control-surface interfaces that decouple
// a UI from whatever it drives. The UI reads and pokes controls; the
// wiring side decides what a knob or dial actually touches.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Knob is a simple on/off toggle control.
type Knob interface {
	Read() bool
	On()
	Off()
	Toggle()
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// Stepper is a Dial the user can nudge up and down in fixed steps.
// Implementations clamp at their own bounds; Inc and Dec return the
// value after the step.
type Stepper[N Number] interface {
	Dial[N]
	Inc() N
	Dec() N
}

// Levels is a control that can read multiple sample levels at once.
type Levels[N Number] interface {
	Read() []N
}
