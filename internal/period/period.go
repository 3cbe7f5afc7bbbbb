package period

import (
	"fmt"
	"strings"
	"time"
)

// Periodicity describes how often a habit is expected to be completed.
type Periodicity string

const (
	Daily  Periodicity = "daily"
	Weekly Periodicity = "weekly"
)

// ErrInvalidPeriodicity is returned when a periodicity string from the CLI
// or a stored record is neither "daily" nor "weekly".
var ErrInvalidPeriodicity = fmt.Errorf("invalid periodicity (must be %q or %q)", Daily, Weekly)

// Parse converts a user-supplied string into a Periodicity.
func Parse(s string) (Periodicity, error) {
	switch Periodicity(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, s)
	}
}

// Valid reports whether p is one of the two known periodicities.
func (p Periodicity) Valid() bool {
	return p == Daily || p == Weekly
}

// KeyFor maps a timestamp to its period key: midnight of the local calendar
// date for daily habits, midnight of the Monday of the containing week for
// weekly habits. All streak and duplicate logic is expressed through keys so
// the date math lives in exactly one place.
func KeyFor(p Periodicity, t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	if p == Weekly {
		// Monday-anchored: Monday offset 0 .. Sunday offset 6.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}
	return day
}

// Same reports whether two timestamps fall in the same period.
func Same(p Periodicity, a, b time.Time) bool {
	return KeyFor(p, a).Equal(KeyFor(p, b))
}

// Next returns the period key immediately after key.
func Next(p Periodicity, key time.Time) time.Time {
	if p == Weekly {
		return key.AddDate(0, 0, 7)
	}
	return key.AddDate(0, 0, 1)
}

// Prev returns the period key immediately before key.
func Prev(p Periodicity, key time.Time) time.Time {
	if p == Weekly {
		return key.AddDate(0, 0, -7)
	}
	return key.AddDate(0, 0, -1)
}

// IsNext reports whether keyB is exactly one period after keyA.
func IsNext(p Periodicity, keyA, keyB time.Time) bool {
	return Next(p, keyA).Equal(keyB)
}
