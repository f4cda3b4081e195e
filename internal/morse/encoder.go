package morse

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Encode lays text out on a timeline at the given rate.
//
// Words are the space-separated fields of the input, empty words
// included, joined by word gaps. Characters within a word are joined by
// letter gaps and the marks within a character by element gaps.
// Characters outside the code table contribute nothing: no marks and no
// gaps of their own. The resulting elements are contiguous from zero
// through TotalDuration with no overlaps or holes.
//
// The only error condition is an invalid timing config. Any text,
// including one with no encodable characters at all, yields a valid
// (possibly empty) sequence.
func Encode(text string, cfg TimingConfig) (Sequence, error) {
	if err := cfg.Validate(); err != nil {
		return Sequence{}, err
	}

	var (
		elements  []TimedElement
		cursor    time.Duration
		charIndex int
	)

	place := func(s Signal, char rune, idx int) {
		d := cfg.Duration(s)
		elements = append(elements, TimedElement{
			ID:        uuid.NewString(),
			Signal:    s,
			Start:     cursor,
			Duration:  d,
			Char:      char,
			CharIndex: idx,
		})
		cursor += d
	}

	words := strings.Split(strings.ToUpper(text), " ")
	for w, word := range words {
		runes := []rune(word)
		for i, r := range runes {
			pattern, ok := marks(r)
			if !ok {
				continue
			}

			for j, mark := range pattern {
				if j > 0 {
					place(ElementGap, r, charIndex)
				}
				place(markSignal(mark), r, charIndex)
			}
			charIndex++

			// A letter gap follows every character that is not last in
			// its word. The position check is against the original
			// word, so a word ending in skipped characters keeps the
			// gap after its final encoded one.
			if i < len(runes)-1 {
				place(LetterGap, 0, charIndex)
			}
		}

		if w < len(words)-1 {
			place(WordGap, 0, charIndex)
			charIndex++
		}
	}

	return Sequence{
		Elements:      elements,
		TotalDuration: cursor,
		SourceText:    text,
	}, nil
}

// DisplayString renders text as dot and dash glyphs: each character
// becomes a run of glyphs, word breaks become "/", and the tokens are
// joined by single spaces. Characters outside the code table are
// dropped. Token positions correspond to the CharIndex values of an
// encoding of the same text.
func DisplayString(text string) string {
	var tokens []string
	for _, r := range strings.ToUpper(text) {
		if r == ' ' {
			tokens = append(tokens, wordSep)
			continue
		}

		pattern, ok := marks(r)
		if !ok {
			continue
		}
		tokens = append(tokens, glyphs(pattern))
	}

	return strings.Join(tokens, " ")
}

// DisplayString renders the sequence's source text as glyph tokens.
// Token positions line up with element CharIndex values.
func (s Sequence) DisplayString() string {
	return DisplayString(s.SourceText)
}

// glyphs converts a mark pattern into its display form.
func glyphs(pattern string) string {
	var sb strings.Builder
	for _, mark := range pattern {
		sb.WriteString(markSignal(mark).Glyph())
	}

	return sb.String()
}
