package report

import (
	"strings"
	"unicode"
)

// CleanMessage makes a commit message safe for a single table cell: line breaks and tabs
// become spaces, other control characters are dropped, whitespace runs collapse to one
// space and the result is trimmed.
func CleanMessage(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r):
			// dropped without separating the surrounding text
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}
