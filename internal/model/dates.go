package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar date form held by collections.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	DateLayout,
}

// NormalizeDate renders a server date or timestamp as YYYY-MM-DD. The
// calendar date is taken as written, in the timestamp's own offset.
func NormalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(DateLayout)
		}
	}
	if len(trimmed) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, trimmed[:len(DateLayout)]); err == nil {
			return trimmed[:len(DateLayout)]
		}
	}
	return trimmed
}

// ParseDate parses a normalized date. The zero time is returned for values
// that are not YYYY-MM-DD.
func ParseDate(value string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return t
}
