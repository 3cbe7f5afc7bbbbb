package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// parseCheckOffTime parses an optional user-supplied check-off timestamp.
// Accepts "YYYY-MM-DD HH:MM:SS" or a bare "YYYY-MM-DD" (interpreted as
// local time); an empty string means now.
func parseCheckOffTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)", s)
}

// shortID truncates a uuid for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// periodNoun returns "day(s)" or "week(s)" to match a streak length.
func periodNoun(p period.Periodicity, n int) string {
	noun := "day"
	if p == period.Weekly {
		noun = "week"
	}
	if n != 1 {
		noun += "s"
	}
	return noun
}

func formatLastCheckOff(t time.Time, ok bool) string {
	if !ok {
		return "never"
	}
	return t.Format("2006-01-02")
}
