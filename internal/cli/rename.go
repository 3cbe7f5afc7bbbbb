package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

type RenameCmd struct {
	ID   string `arg:"" help:"Habit ID."`
	Name string `arg:"" help:"New habit name."`
}

func (c *RenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrHabitNotFound) {
			return fmt.Errorf("habit not found: %s", c.ID)
		}
		return err
	}

	oldName := habit.Name
	habit.Name = c.Name
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	logger.Info("habit renamed", "id", habit.ID, "from", oldName, "to", c.Name)
	fmt.Printf("Renamed habit %q to %q\n", oldName, c.Name)
	return nil
}
