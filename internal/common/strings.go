package common

import "strings"

// SplitList splits a comma-separated list, trimming and lowercasing
// each entry and dropping empties. Duplicates are preserved: callers
// that need unique names disambiguate them downstream.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
