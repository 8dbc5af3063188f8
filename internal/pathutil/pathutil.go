// Package pathutil normalizes asset display names into filesystem-safe strings.
package pathutil

import "strings"

// Replacement is substituted for every rune that is not valid in a file name.
const Replacement = '_'

// invalidChars lists runes rejected by at least one mainstream filesystem.
const invalidChars = `<>:"/\|?*`

// Sanitize replaces characters that are invalid in file names with Replacement.
// It never fails, never truncates, and Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if IsInvalid(r) {
			return Replacement
		}
		return r
	}, name)
}

// IsInvalid reports whether r cannot appear in a file name.
func IsInvalid(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return true
	}
	return strings.ContainsRune(invalidChars, r)
}
