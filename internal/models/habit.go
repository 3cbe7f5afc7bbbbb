package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/period"
)

// Habit represents a recurring practice to track. CheckOffs is kept sorted
// ascending and holds at most one entry per period (day or Monday-anchored
// week, depending on Periodicity).
type Habit struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Periodicity period.Periodicity `json:"periodicity"`
	CreatedAt   time.Time          `json:"created_at"`
	CheckOffs   []time.Time        `json:"check_offs"`
}

// New creates a habit with a fresh ID, zero check-offs and CreatedAt set to
// the current time.
func New(name string, p period.Periodicity) Habit {
	return Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Periodicity: p,
		CreatedAt:   time.Now(),
	}
}

// AddCheckOff records a completion at t. If a check-off already exists in
// the same period the call is a no-op and returns false; duplicates are a
// normal outcome, not an error. The caller supplies the timestamp (including
// "now") so the aggregate stays pure and testable.
func (h *Habit) AddCheckOff(t time.Time) bool {
	for _, existing := range h.CheckOffs {
		if period.Same(h.Periodicity, existing, t) {
			return false
		}
	}

	h.CheckOffs = append(h.CheckOffs, t)
	sort.Slice(h.CheckOffs, func(i, j int) bool {
		return h.CheckOffs[i].Before(h.CheckOffs[j])
	})
	return true
}

// CurrentStreak returns the number of consecutive periods, ending at today's
// period, with a check-off.
func (h *Habit) CurrentStreak() int {
	return h.CurrentStreakAsOf(time.Now())
}

// CurrentStreakAsOf walks the check-offs backward from now's period key.
// The first gap breaks the streak; check-offs dated after now's period are
// skipped rather than counted.
func (h *Habit) CurrentStreakAsOf(now time.Time) int {
	if len(h.CheckOffs) == 0 {
		return 0
	}

	expected := period.KeyFor(h.Periodicity, now)
	streak := 0

	for i := len(h.CheckOffs) - 1; i >= 0; i-- {
		key := period.KeyFor(h.Periodicity, h.CheckOffs[i])
		if key.After(expected) {
			continue
		}
		if !key.Equal(expected) {
			break
		}
		streak++
		expected = period.Prev(h.Periodicity, expected)
	}

	return streak
}

// LongestStreak scans check-offs in ascending order and returns the longest
// run of consecutive periods ever recorded.
func (h *Habit) LongestStreak() int {
	if len(h.CheckOffs) == 0 {
		return 0
	}

	longest := 0
	current := 0
	var prevKey time.Time

	for i, t := range h.CheckOffs {
		key := period.KeyFor(h.Periodicity, t)
		if i > 0 && period.IsNext(h.Periodicity, prevKey, key) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prevKey = key
	}

	return longest
}

// LastCheckOff returns the most recent check-off, if any.
func (h *Habit) LastCheckOff() (time.Time, bool) {
	if len(h.CheckOffs) == 0 {
		return time.Time{}, false
	}
	return h.CheckOffs[len(h.CheckOffs)-1], true
}

// Validate re-checks the aggregate's invariants. Used when loading records
// from storage, where the data may have been edited out-of-band: check-offs
// must be sorted ascending with at most one entry per period, and the
// periodicity must be a known value.
func (h *Habit) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("habit %q has no id", h.Name)
	}
	if !h.Periodicity.Valid() {
		return fmt.Errorf("habit %s: %w: %q", h.ID, period.ErrInvalidPeriodicity, string(h.Periodicity))
	}
	for i := 1; i < len(h.CheckOffs); i++ {
		if h.CheckOffs[i].Before(h.CheckOffs[i-1]) {
			return fmt.Errorf("habit %s: check-offs not sorted at index %d", h.ID, i)
		}
		if period.Same(h.Periodicity, h.CheckOffs[i-1], h.CheckOffs[i]) {
			return fmt.Errorf("habit %s: duplicate check-off for period %s",
				h.ID, period.KeyFor(h.Periodicity, h.CheckOffs[i]).Format("2006-01-02"))
		}
	}
	return nil
}
