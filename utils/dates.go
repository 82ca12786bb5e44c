package utils

import (
	"strings"
	"time"
)

// The tabular backend is inconsistent about timestamps: the nutrition log
// uses Z-suffixed UTC timestamps, vitals_history uses a plain datetime, and
// registration dates are sometimes bare days.
const (
	altTimestampLayout = "2006-01-02 15:04:05"
	dateOnlyLayout     = "2006-01-02"
	displayDateLayout  = "Jan 02, 2006"
	displayStampLayout = "Jan 02, 2006 at 03:04 PM"
)

// ParseAPITimestamp tries the primary Z-format first, then the vitals
// format. The ok result is false when neither matches.
func ParseAPITimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(altTimestampLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseLogTimestamp parses a nutrition-log timestamp, substituting "now"
// when the value is missing or unparseable so a bad row still sorts and
// displays instead of erroring.
func ParseLogTimestamp(s string) time.Time {
	if t, ok := ParseAPITimestamp(s); ok {
		return t
	}
	return time.Now()
}

// VitalsRecordedAt ranks a vitals row for most-recent selection. Unparseable
// values rank as the zero time so they never win over a real timestamp.
func VitalsRecordedAt(s string) time.Time {
	t, _ := ParseAPITimestamp(s)
	return t
}

// FormatDisplayDate renders an API date string as e.g. "Mar 05, 2024".
// Chain: full timestamp, bare date, truncation at the 'T' separator, then
// the given placeholder. Never returns an error.
func FormatDisplayDate(s, placeholder string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return placeholder
	}
	if t, ok := ParseAPITimestamp(s); ok {
		return t.Format(displayDateLayout)
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t.Format(displayDateLayout)
	}
	if i := strings.Index(s, "T"); i > 0 {
		return s[:i]
	}
	return placeholder
}

// FormatDisplayDay renders a parsed timestamp as a list-card date.
func FormatDisplayDay(t time.Time) string {
	return t.Local().Format(displayDateLayout)
}

// FormatDisplayStamp renders a parsed timestamp for the meal detail view.
func FormatDisplayStamp(t time.Time) string {
	return t.Local().Format(displayStampLayout)
}

// SameLocalDay reports whether two instants fall on the same calendar day
// in local time (matching year and day-of-year).
func SameLocalDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
