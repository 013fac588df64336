// Package snippet produces the bounded, highlighted excerpt returned with
// each search hit (spec.md §4.6). It implements "Strategy A": the stored
// content is highlighted by Bleve's own fragmenter at search time, and this
// package only clamps the result to the 240-character target and falls back
// to a plain content prefix when Bleve returns no fragment -- mirroring the
// teacher's own <mark>-tag-aware fragment handling in `pkg/core/svc.go`
// (`stripMarkTags`, `markTagRE`), generalized from tag-stripping into
// tag-aware truncation.
package snippet

import (
	"strings"
	"unicode/utf8"
)

// maxChars is the target excerpt length from spec.md §4.6: the snippet never
// exceeds this many characters of source content, not counting <mark> markers
// or a trailing ellipsis.
const maxChars = 240

const (
	openTag  = "<mark>"
	closeTag = "</mark>"
)

// Build returns the snippet for one hit. fragments is the highlighter output
// for the content field (hit.Fragments[core.FieldContent] from a Bleve
// search); content is the hit's stored, tag-stripped content. When Bleve
// produced at least one fragment, its first fragment is used, clamped to
// maxChars; otherwise a plain prefix of content is returned, per spec.md
// §4.6 Strategy A's fallback rule (also what covers the §7 InternalError
// case: highlighting never fails the search, it just degrades to a prefix).
func Build(content string, fragments []string) string {
	if len(fragments) > 0 {
		return clamp(fragments[0])
	}

	return prefix(content)
}

// prefix returns up to maxChars runes of content, appending "..." when
// truncated (spec.md §4.6 fallback rule).
func prefix(content string) string {
	runes := []rune(content)
	if len(runes) <= maxChars {
		return content
	}

	return string(runes[:maxChars]) + "..."
}

// clamp enforces the maxChars ceiling on a Bleve highlight fragment, counting
// only source characters and ignoring injected <mark>/</mark> markers. If the
// ceiling is hit while a <mark> is still open, it is closed immediately so
// markers never span past the truncation point (spec.md §4.6 invariant: "they
// never span non-matching characters").
func clamp(fragment string) string {
	var b strings.Builder

	sourceChars := 0
	markOpen := false
	truncated := false

	i := 0
	for i < len(fragment) {
		if strings.HasPrefix(fragment[i:], openTag) {
			b.WriteString(openTag)
			markOpen = true
			i += len(openTag)

			continue
		}

		if strings.HasPrefix(fragment[i:], closeTag) {
			b.WriteString(closeTag)
			markOpen = false
			i += len(closeTag)

			continue
		}

		if sourceChars >= maxChars {
			truncated = true
			break
		}

		r, size := utf8.DecodeRuneInString(fragment[i:])
		b.WriteRune(r)
		sourceChars++
		i += size
	}

	if markOpen {
		b.WriteString(closeTag)
	}

	out := b.String()
	if truncated {
		out += "..."
	}

	return out
}
