package converter

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize unifies line endings and composes the text to NFC.
func Normalize(text string) string {
	return norm.NFC.String(newlines.Replace(text))
}

// Escape HTML-escapes everything left after protection. Placeholders
// contain only [A-Z0-9_] and pass through unchanged.
func Escape(s *State) {
	s.Text = escape(s.Text)
}
