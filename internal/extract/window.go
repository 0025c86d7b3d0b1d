package extract

import (
	"strings"
	"unicode/utf8"
)

// Window returns the text from before characters ahead of matchIndex up to
// after characters past it, clamped to the bounds of text and trimmed of
// surrounding whitespace. matchIndex is a byte offset; before and after
// count runes. An index inside a multi-byte rune is moved back to the rune
// start, so the result is always valid UTF-8 when text is.
func Window(text string, matchIndex, before, after int) string {
	if text == "" {
		return ""
	}
	if matchIndex < 0 {
		matchIndex = 0
	}
	if matchIndex > len(text) {
		matchIndex = len(text)
	}
	for matchIndex > 0 && matchIndex < len(text) && !utf8.RuneStart(text[matchIndex]) {
		matchIndex--
	}

	start := matchIndex
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}

	end := matchIndex
	for i := 0; i < after && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	return strings.TrimSpace(text[start:end])
}
