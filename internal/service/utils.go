package service

import (
	"strings"
	"unicode"
)

// sanitizeUTF8 drops invalid UTF-8 sequences and control characters from
// free-text form values before they are stored.
func sanitizeUTF8(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
