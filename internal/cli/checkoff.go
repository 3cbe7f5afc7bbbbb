package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
)

type CheckoffCmd struct {
	ID   string `arg:"" help:"Habit ID."`
	Time string `short:"t" help:"Check-off time (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, default: now)."`
}

func (c *CheckoffCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Confirm the habit exists first so "missing" and "duplicate" stay
	// distinguishable; the store reports both as a plain false.
	habit, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrHabitNotFound) {
			return fmt.Errorf("habit not found: %s", c.ID)
		}
		return err
	}

	t, err := parseCheckOffTime(c.Time)
	if err != nil {
		return err
	}

	accepted, err := ctx.Store.AddCheckOff(habit.ID, t)
	if err != nil {
		return err
	}

	if !accepted {
		unit := "day"
		if habit.Periodicity == period.Weekly {
			unit = "week"
		}
		fmt.Println(warnStyle.Render(fmt.Sprintf("%q is already checked off for this %s", habit.Name, unit)))
		return nil
	}

	logger.Info("check-off recorded", "id", habit.ID, "time", t)
	fmt.Printf("%s %s\n", successStyle.Render("Checked off:"), habit.Name)
	return nil
}
