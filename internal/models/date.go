package models

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// DateOnly is a calendar date without a time-of-day component. The backend
// serializes dates as ISO date strings; timestamps received from it are
// truncated to the day so round trips stay stable.
type DateOnly struct {
	time.Time
}

// NewDateOnly builds a DateOnly for the given calendar day
func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day
func DateOf(t time.Time) DateOnly {
	return NewDateOnly(t.Year(), t.Month(), t.Day())
}

// SameMonth reports whether d falls in the same calendar month as t
func (d DateOnly) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

// String returns the ISO date representation
func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as an ISO date string, or null when unset
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts ISO date strings as well as full timestamps,
// keeping only the date part
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Truncate any time component ("2024-01-07T14:30:00" -> "2024-01-07")
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		s = s[:idx]
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}
