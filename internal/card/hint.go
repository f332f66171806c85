package card

import "strings"

// HintMask replaces the hidden part of a hint.
const HintMask = '_'

// Hint keeps the first half of s (by rune count, rounded down) and masks the rest.
func Hint(s string) string {
	runes := []rune(s)
	n := len(runes) / 2
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(string(runes[:n]))
	for range runes[n:] {
		b.WriteRune(HintMask)
	}
	return b.String()
}
