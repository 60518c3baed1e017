package dialogue

import (
	"regexp"
	"strings"
)

var nonWordChars = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize lowercases text, drops every character outside [a-z0-9\s] and trims
// surrounding whitespace. All matching works on its output.
func Normalize(text string) string {
	return strings.TrimSpace(nonWordChars.ReplaceAllString(strings.ToLower(text), ""))
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
