package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

type ListCmd struct {
	Periodicity string `short:"p" help:"Only habits with this periodicity (daily|weekly)."`
	Stale       int    `help:"Only habits with no check-off in the last N days." default:"-1"`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	if c.Periodicity != "" {
		p, err := period.Parse(c.Periodicity)
		if err != nil {
			return err
		}
		habits = analytics.FilterByPeriodicity(habits, p)
	} else {
		habits = analytics.SortByCreation(habits)
	}

	if c.Stale >= 0 {
		days := c.Stale
		if days == 0 {
			days = analytics.DefaultStaleDays
		}
		habits = analytics.Stale(habits, days, time.Now())
	}

	if len(habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	printHabitTable(habits)
	return nil
}

func printHabitTable(habits []models.Habit) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-24s %-8s %10s  %s",
		"ID", "NAME", "PERIOD", "CHECK-OFFS", "LAST CHECK-OFF")))
	for i := range habits {
		last, ok := habits[i].LastCheckOff()
		fmt.Printf("%-10s %-24s %-8s %10d  %s\n",
			shortID(habits[i].ID),
			habits[i].Name,
			habits[i].Periodicity,
			len(habits[i].CheckOffs),
			formatLastCheckOff(last, ok),
		)
	}
}
