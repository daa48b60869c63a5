// Package textnorm canonicalizes essay text before comparison.
package textnorm

import (
	"strings"
	"unicode"
)

// Clean keeps ASCII letters, digits, apostrophes and whitespace (newlines included),
// then lowercases the result. Everything else is dropped.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Words splits text on runs of whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Prepare applies Clean when clean is set and returns text unchanged otherwise.
func Prepare(text string, clean bool) string {
	if clean {
		return Clean(text)
	}
	return text
}
