// Package morse turns text into precisely timed International Morse
// signal sequences. It is pure timing math: rendering the sequences as
// sound or UI belongs to other packages.
package morse

// Signal is one kind of event on a transmission timeline: an audible
// mark (dot or dash) or one of the three silent separations.
type Signal int

const (
	Dot Signal = iota
	Dash
	// ElementGap separates marks within a single character.
	ElementGap
	// LetterGap separates characters within a word.
	LetterGap
	// WordGap separates words.
	WordGap
)

// signalUnits holds the standard 1:3:1:3:7 timing ratios. These are
// fixed by the code itself, not configurable.
var signalUnits = [...]int{
	Dot:        1,
	Dash:       3,
	ElementGap: 1,
	LetterGap:  3,
	WordGap:    7,
}

// Units returns the signal's length in timing units.
func (s Signal) Units() int {
	return signalUnits[s]
}

// Audible reports whether the signal produces output, as opposed to a
// silent gap.
func (s Signal) Audible() bool {
	return s == Dot || s == Dash
}

// Display glyphs. U+00B7 middle dot and U+2212 minus render at an even
// width in terminal fonts, unlike '.' and '-'.
const (
	dotGlyph  = "·"
	dashGlyph = "−"
	wordSep   = "/"
)

// Glyph returns the display glyph for audible signals and the empty
// string for gaps.
func (s Signal) Glyph() string {
	switch s {
	case Dot:
		return dotGlyph
	case Dash:
		return dashGlyph
	default:
		return ""
	}
}

func (s Signal) String() string {
	switch s {
	case Dot:
		return "dot"
	case Dash:
		return "dash"
	case ElementGap:
		return "element-gap"
	case LetterGap:
		return "letter-gap"
	case WordGap:
		return "word-gap"
	default:
		return "unknown"
	}
}
