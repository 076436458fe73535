// ABOUTME: Time parsing utilities for WordPress and RSS date strings
// ABOUTME: Also formats publication dates the way article pages display them

package time

import (
	"strings"
	"time"
)

// Formats seen in WordPress GraphQL (site-local, no zone) and RSS fallbacks
var timeFormats = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LongDateLayout renders dates as "May 1, 2024"
const LongDateLayout = "January 2, 2006"

// ParseFlexibleTime attempts to parse a time string using various formats.
// Zone-less values are interpreted in loc; a nil loc means UTC.
func ParseFlexibleTime(timeStr string, loc *time.Location) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, format := range timeFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t
		}
	}

	return time.Time{}
}

// FormatLongDate formats t with LongDateLayout; the zero time renders empty
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LongDateLayout)
}
