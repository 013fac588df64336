// Package textnorm provides pure, character-level normalization functions for
// Hebrew text. It is shared by the analyzer pipeline, the index builder, and
// the query compiler so that corpus text and query text see an identical
// lexical surface.
package textnorm

import "strings"

// diacriticRanges lists the Unicode code point ranges and singleton points
// that make up Hebrew diacritics: nikud (vowel points) and te'amim
// (cantillation marks). Defined by spec as:
//
//	[U+0591..U+05AF] ∪ [U+05B0..U+05BD] ∪ {U+05BF, U+05C1, U+05C2, U+05C4, U+05C5, U+05C7}
var diacriticRanges = [][2]rune{
	{0x0591, 0x05AF},
	{0x05B0, 0x05BD},
	{0x05BF, 0x05BF},
	{0x05C1, 0x05C1},
	{0x05C2, 0x05C2},
	{0x05C4, 0x05C4},
	{0x05C5, 0x05C5},
	{0x05C7, 0x05C7},
}

// isDiacritic reports whether r belongs to the Hebrew diacritic set D.
func isDiacritic(r rune) bool {
	for _, rg := range diacriticRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}

	return false
}

// RemoveDiacritics removes every code point in D from s, leaving all other
// characters unchanged. It is idempotent: calling it twice is identical to
// calling it once.
func RemoveDiacritics(s string) string {
	hasDiacritic := false

	for _, r := range s {
		if isDiacritic(r) {
			hasDiacritic = true
			break
		}
	}

	if !hasDiacritic {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isDiacritic(r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// StripMarkup replaces every maximal run matching "<...>" (with no embedded
// '<' or '>') with a single space. It never errors: malformed or unmatched
// angle brackets are simply left as ordinary characters.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '<' {
			b.WriteByte(s[i])
			i++

			continue
		}

		end := strings.IndexAny(s[i+1:], "<>")
		if end == -1 || s[i+1+end] != '>' {
			// No matching '>' before the next '<' (or end of string):
			// not a tag run, keep the '<' literally.
			b.WriteByte(s[i])
			i++

			continue
		}

		b.WriteByte(' ')
		i = i + 1 + end + 1
	}

	return b.String()
}

// Normalize applies StripMarkup followed by RemoveDiacritics. The result is
// never longer than the input.
func Normalize(s string) string {
	return RemoveDiacritics(StripMarkup(s))
}
