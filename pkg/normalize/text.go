package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text cleans free-form commentary. Hangul typed on different systems
// arrives in both composed and decomposed forms, so the result is NFC.
// Runs of spaces within a line collapse to one; line breaks are kept.
func Text(s string) string {
	lines := strings.Split(norm.NFC.String(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Key normalizes a grouping key: NFC, trimmed.
func Key(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
