package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/period"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	stats := analytics.Statistics(habits, time.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render("Habit statistics"))
	fmt.Fprintf(&b, "Total habits:            %d\n", stats.TotalHabits)
	fmt.Fprintf(&b, "  Daily:                 %d\n", stats.DailyHabits)
	fmt.Fprintf(&b, "  Weekly:                %d\n", stats.WeeklyHabits)
	fmt.Fprintf(&b, "Total check-offs:        %d\n", stats.TotalCheckOffs)
	fmt.Fprintf(&b, "Avg check-offs/habit:    %.1f\n", stats.AverageCheckOffsPerHabit)
	fmt.Fprintf(&b, "Longest streak overall:  %d\n", stats.LongestStreakOverall)
	fmt.Fprintf(&b, "Habits on a streak:      %d\n", stats.HabitsWithCurrentStreak)
	fmt.Fprintf(&b, "Completion rate (daily):  %3.0f%%\n", stats.CompletionRates[period.Daily]*100)
	fmt.Fprintf(&b, "Completion rate (weekly): %3.0f%%", stats.CompletionRates[period.Weekly]*100)

	fmt.Println(panelStyle.Render(b.String()))
	return nil
}
