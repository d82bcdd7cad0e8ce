package search

import "strings"

// Filter keeps the items whose name contains term, ignoring case. Order is
// preserved and an empty term keeps everything.
func Filter[T any](items []T, term string, name func(T) string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if term == "" || strings.Contains(strings.ToLower(name(it)), term) {
			out = append(out, it)
		}
	}
	return out
}
