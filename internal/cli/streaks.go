package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
)

type StreaksCmd struct {
	Min int `help:"Only habits with a current streak of at least N." default:"0"`
}

func (c *StreaksCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	now := time.Now()
	if c.Min > 0 {
		habits = analytics.WithStreakAtLeast(habits, c.Min, now)
	}

	summaries := analytics.StreakSummaries(habits, now)
	if len(summaries) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-24s %-8s %8s %8s",
		"ID", "NAME", "PERIOD", "CURRENT", "LONGEST")))
	for _, s := range summaries {
		fmt.Printf("%-10s %-24s %-8s %8d %8d\n",
			shortID(s.ID), s.Name, s.Periodicity, s.Current, s.Longest)
	}

	if best, longest := analytics.LongestStreakOverall(habits); best != nil {
		fmt.Println()
		fmt.Printf("%s %s (%d %s)\n",
			titleStyle.Render("Longest streak overall:"), best.Name, longest, periodNoun(best.Periodicity, longest))
	}

	return nil
}
