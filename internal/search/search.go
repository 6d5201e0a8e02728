// Package search filters record sequences by a free-text query.
//
// A record matches when the case-folded query is a substring of the
// case-folded value of at least one of the declared fields. The empty query
// matches everything. Filtering never reorders or mutates its input, so the
// same arguments always produce the same output.
package search

import "strings"

// Searchable exposes named string fields for matching.
type Searchable interface {
	Field(name string) (string, bool)
}

// Filter returns the items matching query on any of fields, in input order.
// The result is always a fresh slice.
func Filter[T Searchable](items []T, fields []string, query string) []T {
	out := make([]T, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	needle := strings.ToLower(query)
	for _, item := range items {
		if matchesFolded(item, fields, needle) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item matches query on any of fields.
func Matches[T Searchable](item T, fields []string, query string) bool {
	if query == "" {
		return true
	}
	return matchesFolded(item, fields, strings.ToLower(query))
}

func matchesFolded[T Searchable](item T, fields []string, needle string) bool {
	for _, f := range fields {
		value, ok := item.Field(f)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}
