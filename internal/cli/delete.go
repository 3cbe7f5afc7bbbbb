package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Habit ID."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
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

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and its %d check-offs?", habit.Name, len(habit.CheckOffs))).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	deleted, err := ctx.Store.DeleteHabit(habit.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("habit not found: %s", c.ID)
	}

	logger.Info("habit deleted", "id", habit.ID, "name", habit.Name)
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
