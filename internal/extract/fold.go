package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fold lower-cases s without changing its byte length, so an index found in
// the folded string is valid in the original. Runes whose lower-case form
// has a different encoded width, and invalid bytes, pass through unchanged.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			b.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(c)
			i++
			continue
		}
		if lr := unicode.ToLower(r); utf8.RuneLen(lr) == size {
			b.WriteRune(lr)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// ContainsAny reports whether folded text contains any of the keywords.
// Keywords are expected to be folded already.
func ContainsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(folded, k) {
			return true
		}
	}
	return false
}
