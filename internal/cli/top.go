package cli

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/analytics"
)

type TopCmd struct {
	Limit int `short:"n" help:"Number of habits to show." default:"5"`
}

func (c *TopCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	entries := analytics.MostActive(analytics.SortByCreation(habits), c.Limit)
	if len(entries) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-4s %-24s %-8s %10s", "#", "NAME", "PERIOD", "CHECK-OFFS")))
	for i, e := range entries {
		fmt.Printf("%-4d %-24s %-8s %10d\n", i+1, e.Habit.Name, e.Habit.Periodicity, e.CheckOffs)
	}

	return nil
}
