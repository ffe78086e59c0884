package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// NormalizeToken trims and lowercases an enum-like input token.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
