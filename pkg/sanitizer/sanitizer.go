// Package sanitizer normalizes free-text input before validation and storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses any run of whitespace
// (including tabs and newlines) into a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeArea cleans up the free-text department label on a reservation.
func NormalizeArea(area string) string {
	return TrimAndNormalize(area)
}

// NormalizeRoom cleans up a room identifier as submitted by the client.
func NormalizeRoom(room string) string {
	return TrimAndNormalize(room)
}
