package utils

import (
	"unicode"
	"unicode/utf8"
)

// LowerFirst lowercases the first character of s and leaves the rest alone.
// "Hello" becomes "hello" but "HELLO" becomes "hELLO".
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}
	return string(lower) + s[size:]
}

// FirstNonSpace returns the first non-whitespace rune of s, or 0 for blank input.
func FirstNonSpace(s string) rune {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return r
		}
	}
	return 0
}
