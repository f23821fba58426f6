package common

import "strings"

// HasAny reports whether s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IndexFold returns the index of the first element of names equal to s under
// case folding and surrounding whitespace, or -1.
func IndexFold(names []string, s string) int {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), s) {
			return i
		}
	}
	return -1
}
