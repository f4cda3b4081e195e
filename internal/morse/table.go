package morse

import "unicode"

// codeTable maps each encodable character to its mark pattern, written
// with '.' for dots and '-' for dashes. International Morse: letters,
// digits and the common punctuation set. Characters outside the table
// are skipped during encoding.
var codeTable = map[rune]string{
	'A': ".-",
	'B': "-...",
	'C': "-.-.",
	'D': "-..",
	'E': ".",
	'F': "..-.",
	'G': "--.",
	'H': "....",
	'I': "..",
	'J': ".---",
	'K': "-.-",
	'L': ".-..",
	'M': "--",
	'N': "-.",
	'O': "---",
	'P': ".--.",
	'Q': "--.-",
	'R': ".-.",
	'S': "...",
	'T': "-",
	'U': "..-",
	'V': "...-",
	'W': ".--",
	'X': "-..-",
	'Y': "-.--",
	'Z': "--..",

	'0': "-----",
	'1': ".----",
	'2': "..---",
	'3': "...--",
	'4': "....-",
	'5': ".....",
	'6': "-....",
	'7': "--...",
	'8': "---..",
	'9': "----.",

	'.':  ".-.-.-",
	',':  "--..--",
	'?':  "..--..",
	'\'': ".----.",
	'!':  "-.-.--",
	'/':  "-..-.",
	'(':  "-.--.",
	')':  "-.--.-",
	'&':  ".-...",
	':':  "---...",
	';':  "-.-.-.",
	'=':  "-...-",
	'+':  ".-.-.",
	'-':  "-....-",
	'"':  ".-..-.",
	'@':  ".--.-.",
}

// marks returns the mark pattern for an already-uppercased rune.
func marks(r rune) (string, bool) {
	pattern, ok := codeTable[r]
	return pattern, ok
}

// Signals looks up the signal sequence for a character,
// case-insensitively. The bool reports whether the character is
// encodable.
func Signals(r rune) ([]Signal, bool) {
	pattern, ok := marks(unicode.ToUpper(r))
	if !ok {
		return nil, false
	}

	signals := make([]Signal, 0, len(pattern))
	for _, mark := range pattern {
		signals = append(signals, markSignal(mark))
	}

	return signals, true
}

// markSignal converts one pattern rune into its signal.
func markSignal(mark rune) Signal {
	if mark == '-' {
		return Dash
	}

	return Dot
}
