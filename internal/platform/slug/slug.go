// Package slug turns display names into file-name fragments.
package slug

import (
	"regexp"
	"strings"
)

const maxLen = 40

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and joins its alphanumeric runs with dashes, cut at a
// dash boundary to at most 40 characters. Inputs with nothing usable yield
// fallback.
func Make(input, fallback string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(input), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = s[:maxLen]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
		s = strings.TrimRight(s, "-")
	}
	if s == "" {
		return fallback
	}
	return s
}
