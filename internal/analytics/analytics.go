// Package analytics provides pure, side-effect-free reducers over habit
// collections. None of the functions mutate their input; anything that
// depends on "today" takes an explicit reference time.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// DefaultStaleDays is the look-back window for Stale when the caller does
// not choose one.
const DefaultStaleDays = 7

// SortByCreation returns the habits sorted ascending by creation time.
// The sort is stable, so habits created at the same instant keep their
// input order.
func SortByCreation(habits []models.Habit) []models.Habit {
	sorted := make([]models.Habit, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// FilterByPeriodicity returns the habits with the given periodicity, sorted
// by creation time.
func FilterByPeriodicity(habits []models.Habit, p period.Periodicity) []models.Habit {
	var filtered []models.Habit
	for _, h := range habits {
		if h.Periodicity == p {
			filtered = append(filtered, h)
		}
	}
	return SortByCreation(filtered)
}

// LongestStreakOverall returns the habit with the maximal longest streak and
// that streak length. Ties go to the first habit encountered; (nil, 0) on
// empty input.
func LongestStreakOverall(habits []models.Habit) (*models.Habit, int) {
	var best *models.Habit
	longest := 0

	for i := range habits {
		if streak := habits[i].LongestStreak(); streak > longest {
			longest = streak
			h := habits[i]
			best = &h
		}
	}

	return best, longest
}

// LongestStreakByHabit maps habit ID to longest streak. Keyed by ID, not
// name, so habits sharing a name never collide.
func LongestStreakByHabit(habits []models.Habit) map[string]int {
	streaks := make(map[string]int, len(habits))
	for i := range habits {
		streaks[habits[i].ID] = habits[i].LongestStreak()
	}
	return streaks
}

// CurrentStreakByHabit maps habit ID to current streak as of now.
func CurrentStreakByHabit(habits []models.Habit, now time.Time) map[string]int {
	streaks := make(map[string]int, len(habits))
	for i := range habits {
		streaks[habits[i].ID] = habits[i].CurrentStreakAsOf(now)
	}
	return streaks
}

// StreakSummary pairs a habit's identity with its streak figures for
// display.
type StreakSummary struct {
	ID          string
	Name        string
	Periodicity period.Periodicity
	Current     int
	Longest     int
}

// StreakSummaries returns one summary per habit, sorted by creation time.
func StreakSummaries(habits []models.Habit, now time.Time) []StreakSummary {
	sorted := SortByCreation(habits)
	summaries := make([]StreakSummary, 0, len(sorted))
	for i := range sorted {
		summaries = append(summaries, StreakSummary{
			ID:          sorted[i].ID,
			Name:        sorted[i].Name,
			Periodicity: sorted[i].Periodicity,
			Current:     sorted[i].CurrentStreakAsOf(now),
			Longest:     sorted[i].LongestStreak(),
		})
	}
	return summaries
}

// WithStreakAtLeast returns the habits whose current streak as of now is at
// least min, in input order.
func WithStreakAtLeast(habits []models.Habit, min int, now time.Time) []models.Habit {
	var matched []models.Habit
	for i := range habits {
		if habits[i].CurrentStreakAsOf(now) >= min {
			matched = append(matched, habits[i])
		}
	}
	return matched
}

// Stale returns the habits whose most recent check-off date is strictly
// before now minus the given number of days, plus habits with no check-offs
// at all.
func Stale(habits []models.Habit, days int, now time.Time) []models.Habit {
	cutoff := dateOf(now).AddDate(0, 0, -days)

	var stale []models.Habit
	for i := range habits {
		last, ok := habits[i].LastCheckOff()
		if !ok || dateOf(last).Before(cutoff) {
			stale = append(stale, habits[i])
		}
	}
	return stale
}

// CompletionRateByPeriodicity returns, for each periodicity, total
// check-offs over total expected periods since each habit's creation.
// Expected periods are days-since-creation+1 (daily) or
// weeks-since-creation+1 (weekly). Rates are clamped to 1.0 so backdated
// data can never report more than full completion.
func CompletionRateByPeriodicity(habits []models.Habit, now time.Time) map[period.Periodicity]float64 {
	rates := make(map[period.Periodicity]float64, 2)

	for _, p := range []period.Periodicity{period.Daily, period.Weekly} {
		group := FilterByPeriodicity(habits, p)
		expected := 0
		completed := 0

		for i := range group {
			days := daysBetween(dateOf(group[i].CreatedAt), dateOf(now))
			if days < 0 {
				continue
			}
			if p == period.Weekly {
				expected += days/7 + 1
			} else {
				expected += days + 1
			}
			completed += len(group[i].CheckOffs)
		}

		rate := 0.0
		if expected > 0 {
			rate = math.Min(float64(completed)/float64(expected), 1.0)
		}
		rates[p] = rate
	}

	return rates
}

// Activity pairs a habit with its raw check-off count.
type Activity struct {
	Habit     models.Habit
	CheckOffs int
}

// MostActive returns the top limit habits by check-off count, descending.
// The sort is stable, so ties keep their input order.
func MostActive(habits []models.Habit, limit int) []Activity {
	entries := make([]Activity, 0, len(habits))
	for i := range habits {
		entries = append(entries, Activity{Habit: habits[i], CheckOffs: len(habits[i].CheckOffs)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CheckOffs > entries[j].CheckOffs
	})

	if limit >= 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

// Stats aggregates collection-wide statistics.
type Stats struct {
	TotalHabits              int
	DailyHabits              int
	WeeklyHabits             int
	TotalCheckOffs           int
	AverageCheckOffsPerHabit float64
	LongestStreakOverall     int
	HabitsWithCurrentStreak  int
	CompletionRates          map[period.Periodicity]float64
}

// Statistics computes Stats for the collection as of now. An empty input
// yields all-zero fields with both completion rates present at 0.0.
func Statistics(habits []models.Habit, now time.Time) Stats {
	stats := Stats{
		TotalHabits:     len(habits),
		CompletionRates: CompletionRateByPeriodicity(habits, now),
	}

	for i := range habits {
		switch habits[i].Periodicity {
		case period.Daily:
			stats.DailyHabits++
		case period.Weekly:
			stats.WeeklyHabits++
		}
		stats.TotalCheckOffs += len(habits[i].CheckOffs)
		if habits[i].CurrentStreakAsOf(now) > 0 {
			stats.HabitsWithCurrentStreak++
		}
	}

	if len(habits) > 0 {
		stats.AverageCheckOffsPerHabit = float64(stats.TotalCheckOffs) / float64(len(habits))
	}
	_, stats.LongestStreakOverall = LongestStreakOverall(habits)

	return stats
}

// CreatedBetween returns the habits created within [start, end], compared on
// calendar dates, in input order.
func CreatedBetween(habits []models.Habit, start, end time.Time) []models.Habit {
	from, to := dateOf(start), dateOf(end)

	var matched []models.Habit
	for i := range habits {
		created := dateOf(habits[i].CreatedAt)
		if !created.Before(from) && !created.After(to) {
			matched = append(matched, habits[i])
		}
	}
	return matched
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Rounding absorbs DST
// offsets between local midnights.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
