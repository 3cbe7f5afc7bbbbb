package cli

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

type AddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Periodicity string `arg:"" help:"How often the habit recurs (daily|weekly)."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	p, err := period.Parse(c.Periodicity)
	if err != nil {
		return err
	}

	habit := models.New(c.Name, p)
	if err := ctx.Store.CreateHabit(habit); err != nil {
		return err
	}

	logger.Info("habit created", "id", habit.ID, "name", habit.Name, "periodicity", p)
	fmt.Printf("%s %s (%s, ID: %s)\n", successStyle.Render("Added habit:"), habit.Name, p, habit.ID)
	return nil
}
