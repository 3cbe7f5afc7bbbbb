package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// MenuCmd is the interactive counterpart to the one-shot commands: a huh
// form loop for people who prefer picking from a list over remembering IDs.
type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	for {
		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Habit tracker").
				Options(
					huh.NewOption("List habits", "list"),
					huh.NewOption("Check off a habit", "checkoff"),
					huh.NewOption("Add a habit", "add"),
					huh.NewOption("Delete a habit", "delete"),
					huh.NewOption("Streaks", "streaks"),
					huh.NewOption("Statistics", "stats"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch action {
		case "list":
			err = (&ListCmd{Stale: -1}).Run(ctx)
		case "checkoff":
			err = c.checkOff(ctx)
		case "add":
			err = c.add(ctx)
		case "delete":
			err = c.delete(ctx)
		case "streaks":
			err = (&StreaksCmd{}).Run(ctx)
		case "stats":
			err = (&StatsCmd{}).Run(ctx)
		case "quit":
			return nil
		}
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			fmt.Println(warnStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		fmt.Println()
	}
}

// selectHabit prompts for one of the stored habits. ok is false when there
// are none.
func (c *MenuCmd) selectHabit(ctx *Context, title string) (habit models.Habit, ok bool, err error) {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, false, err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found")
		return models.Habit{}, false, nil
	}

	habits = analytics.SortByCreation(habits)
	options := make([]huh.Option[string], 0, len(habits))
	for i := range habits {
		label := fmt.Sprintf("%s (%s)", habits[i].Name, habits[i].Periodicity)
		options = append(options, huh.NewOption(label, habits[i].ID))
	}

	var id string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&id),
	))
	if err := form.Run(); err != nil {
		return models.Habit{}, false, err
	}

	for i := range habits {
		if habits[i].ID == id {
			return habits[i], true, nil
		}
	}
	return models.Habit{}, false, nil
}

func (c *MenuCmd) add(ctx *Context) error {
	var name, periodicity string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Habit name").
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			}).
			Value(&name),
		huh.NewSelect[string]().
			Title("Periodicity").
			Options(
				huh.NewOption("Daily", string(period.Daily)),
				huh.NewOption("Weekly", string(period.Weekly)),
			).
			Value(&periodicity),
	))
	if err := form.Run(); err != nil {
		return err
	}

	return (&AddCmd{Name: name, Periodicity: periodicity}).Run(ctx)
}

func (c *MenuCmd) checkOff(ctx *Context) error {
	habit, ok, err := c.selectHabit(ctx, "Which habit did you complete?")
	if err != nil || !ok {
		return err
	}

	accepted, err := ctx.Store.AddCheckOff(habit.ID, time.Now())
	if err != nil {
		return err
	}
	if !accepted {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%q is already checked off for this %s",
			habit.Name, periodNoun(habit.Periodicity, 1))))
		return nil
	}

	fmt.Printf("%s %s\n", successStyle.Render("Checked off:"), habit.Name)
	return nil
}

func (c *MenuCmd) delete(ctx *Context) error {
	habit, ok, err := c.selectHabit(ctx, "Which habit should be deleted?")
	if err != nil || !ok {
		return err
	}

	return (&DeleteCmd{ID: habit.ID}).Run(ctx)
}
