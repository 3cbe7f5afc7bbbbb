package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/seed"
)

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	created, err := seed.Populate(ctx.Store, time.Now())
	if err != nil {
		return err
	}

	if created == 0 {
		fmt.Println(warnStyle.Render("Storage already contains habits, skipping sample data"))
		return nil
	}

	fmt.Printf("%s %d sample habits with %d weeks of history\n",
		successStyle.Render("Seeded"), created, seed.SampleWeeks)
	return nil
}
