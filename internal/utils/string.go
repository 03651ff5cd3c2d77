package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenPunctuation are the non-space runes that end a token.
const tokenPunctuation = ",.-!?"

// IsSeparator checks if a rune splits document tokens
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(tokenPunctuation, r)
}

// ScanTokens is a bufio.SplitFunc returning runs of text between separators.
// Works like bufio.ScanWords with IsSeparator as the boundary test.
func ScanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if !IsSeparator(r) {
			break
		}
	}
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if IsSeparator(r) {
			return i + width, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
