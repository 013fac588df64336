package query

import "strings"

// specialChars is the shared table of characters special to the query
// syntax (spec.md §4.4). Both escaping paths -- "escape everything" for
// default mode and "escape everything except wildcards" for wildcard mode --
// read from this single table so they can never drift apart (spec.md §9
// design note).
const specialChars = `+-&|!(){}[]^"~:/\*?`

func isSpecialChar(r rune) bool {
	return strings.ContainsRune(specialChars, r)
}

// EscapeDefault backslash-escapes every character special to the query
// syntax, including '*' and '?'. Used by default (non-wildcard) mode, where
// the whole query string is escaped before being parsed as a conjunction of
// literal terms (spec.md §4.4 default mode).
func EscapeDefault(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSpecialChar(r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// unescapeTerm reverses a single backslash-escaped segment produced by
// EscapeDefault, recovering the literal term text that was originally typed.
func unescapeTerm(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	escaped := false

	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false

			continue
		}

		if r == '\\' {
			escaped = true
			continue
		}

		b.WriteRune(r)
	}

	if escaped {
		b.WriteByte('\\')
	}

	return b.String()
}

// splitEscapedTerms splits a fully-escaped query string on whitespace
// (escaping never touches plain spaces) and unescapes each resulting term,
// recovering the literal term list the default-mode compiler builds a
// conjunction over. This is the "parse" half of the escape-then-parse
// pipeline spec.md §8 requires to be idempotent.
func splitEscapedTerms(escaped string) []string {
	fields := strings.Fields(escaped)
	terms := make([]string, 0, len(fields))

	for _, f := range fields {
		if t := unescapeTerm(f); t != "" {
			terms = append(terms, t)
		}
	}

	return terms
}
