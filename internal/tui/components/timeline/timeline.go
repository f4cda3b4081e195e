// Package timeline renders an encoded sequence as Morse glyph tokens
// with the letter under the playhead highlighted.
package timeline

import (
	"strings"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tui/style"
)

// Model renders the Morse line for a playback snapshot. Tokens the
// playhead has passed dim, the one under it highlights, the rest wait
// in the default glyph style. It has no internal state beyond width;
// each View call renders the snapshot it is given.
type Model struct {
	width int
}

func New(width int) Model {
	return Model{width: width}
}

// SetWidth returns a copy resized to the given column count.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// View renders the snapshot's display string inside a border.
//
// Display tokens line up one-to-one with element character indexes:
// encodable characters and spaces each produce one token, unknown
// characters produce none on either side. A letter gap highlights
// nothing (the playhead is between letters); a word gap highlights its
// own "/" token.
func (m Model) View(snap playback.Snapshot) string {
	display := snap.Sequence.DisplayString()
	if display == "" {
		return style.Display.Width(m.width).Render(style.Muted.Render("nothing to play"))
	}

	active, played := -1, 0
	if el, ok := snap.ActiveElement(); ok {
		if el.Signal == morse.LetterGap {
			played = el.CharIndex
		} else {
			active = el.CharIndex
			played = el.CharIndex
		}
	}

	tokens := strings.Split(display, " ")
	styled := make([]string, len(tokens))

	for i, token := range tokens {
		switch {
		case i == active:
			styled[i] = style.Active.Render(token)
		case i < played:
			styled[i] = style.Played.Render(token)
		default:
			styled[i] = style.Glyph.Render(token)
		}
	}

	return style.Display.Width(m.width).Render(strings.Join(styled, " "))
}
