// Package seed generates the predefined demo habits with four weeks of
// deterministic check-off history.
package seed

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
)

// SampleWeeks is how far back sample history reaches.
const SampleWeeks = 4

// Habits builds the five predefined habits with sample data up to now.
// The check-off pattern is a function of the calendar date, so repeated
// runs produce identical data: daily habits are skipped on dates whose day
// of month is divisible by 5 (3 on weekends), weekly habits on Mondays
// divisible by 7.
func Habits(now time.Time) []models.Habit {
	habits := []models.Habit{
		models.New("Brush teeth", period.Daily),
		models.New("Exercise", period.Daily),
		models.New("Read", period.Daily),
		models.New("Grocery shop", period.Weekly),
		models.New("Clean house", period.Weekly),
	}

	start := dateOf(now).AddDate(0, 0, -7*SampleWeeks)
	end := dateOf(now)

	for i := range habits {
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			switch habits[i].Periodicity {
			case period.Daily:
				if shouldCheckOffDaily(day) {
					habits[i].AddCheckOff(day.Add(8 * time.Hour))
				}
			case period.Weekly:
				if day.Weekday() == time.Monday && shouldCheckOffWeekly(day) {
					habits[i].AddCheckOff(day.Add(10 * time.Hour))
				}
			}
		}
	}

	return habits
}

// Populate writes the sample habits into the store. A store that already
// contains habits is left untouched and Populate reports zero created.
func Populate(store storage.Provider, now time.Time) (int, error) {
	existing, err := store.GetAllHabits()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	habits := Habits(now)
	for _, habit := range habits {
		if err := store.CreateHabit(habit); err != nil {
			return 0, fmt.Errorf("failed to seed habit %q: %w", habit.Name, err)
		}
	}

	return len(habits), nil
}

func shouldCheckOffDaily(day time.Time) bool {
	if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return day.Day()%3 != 0
	}
	return day.Day()%5 != 0
}

func shouldCheckOffWeekly(monday time.Time) bool {
	return monday.Day()%7 != 0
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
