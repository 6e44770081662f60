package models

import (
	"strings"
	"time"
)

// DueDateLayout is the serialized form of a due date
const DueDateLayout = "2006-01-02T15:04:05.000Z"

// Midnight strips the time of day from t, keeping its calendar date.
// The result is always in UTC so two calendar days compare with Equal.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day
func Today() time.Time {
	return Midnight(time.Now())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// FormatDueDate renders the calendar day of t in DueDateLayout
func FormatDueDate(t time.Time) string {
	return Midnight(t).Format(DueDateLayout)
}

// ParseDueDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
// Timestamps keep the calendar day written in the string, whatever the offset.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("2006-01-02") {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, err
		}
		return Midnight(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return Midnight(t), nil
}
