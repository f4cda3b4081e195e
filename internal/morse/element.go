package morse

import (
	"sort"
	"time"

	"github.com/alkime/sounder/pkg/collections"
)

// TimedElement is one signal placed on a sequence timeline.
type TimedElement struct {
	// ID is unique per element within one encoding. It exists so UIs
	// can key animation state; two encodings of the same text agree on
	// everything except IDs.
	ID     string
	Signal Signal

	Start    time.Duration
	Duration time.Duration

	// Char is the uppercased source character the element was encoded
	// from, or zero for separations that belong to no single character.
	Char rune
	// CharIndex is the element's position in the encodable text: known
	// characters and word separators count, skipped characters do not.
	// It lines up with the token positions of DisplayString.
	CharIndex int
}

// End returns the instant the element stops being active.
func (e TimedElement) End() time.Duration {
	return e.Start + e.Duration
}

// Active reports whether t falls inside the element's half-open
// [Start, End) window.
func (e TimedElement) Active(t time.Duration) bool {
	return t >= e.Start && t < e.End()
}

// Sequence is a fully laid out transmission: contiguous timed elements
// covering [0, TotalDuration). Sequences are values; once encoded they
// are never mutated.
type Sequence struct {
	Elements      []TimedElement
	TotalDuration time.Duration
	SourceText    string
}

// Empty reports whether the sequence has no elements at all.
func (s Sequence) Empty() bool {
	return len(s.Elements) == 0
}

// VisibleElements returns the audible (dot and dash) elements in
// timeline order. This is the subset a visual renderer draws.
func (s Sequence) VisibleElements() []TimedElement {
	return collections.Filter(s.Elements, func(el TimedElement) bool {
		return el.Signal.Audible()
	})
}

// ActiveIndex returns the index into Elements of the element whose
// window contains t, or -1 when t falls outside the timeline (before
// zero, at or past the total duration, or on an empty sequence).
func (s Sequence) ActiveIndex(t time.Duration) int {
	if t < 0 || len(s.Elements) == 0 {
		return -1
	}

	// Elements are contiguous and ordered, so the active element is the
	// first one ending after t.
	i := sort.Search(len(s.Elements), func(i int) bool {
		return s.Elements[i].End() > t
	})

	if i < len(s.Elements) && s.Elements[i].Active(t) {
		return i
	}

	return -1
}
