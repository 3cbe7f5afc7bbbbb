package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Storage file path (.json selects JSON storage, anything else SQLite)." type:"path" default:"~/.config/habitual/habits.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitual storage."`
	Menu     cli.MenuCmd     `cmd:"" help:"Launch the interactive menu." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Add a new habit."`
	Checkoff cli.CheckoffCmd `cmd:"" help:"Record a habit completion."`
	List     cli.ListCmd     `cmd:"" help:"List habits."`
	Streaks  cli.StreaksCmd  `cmd:"" help:"Show current and longest streaks."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show aggregate habit statistics."`
	Top      cli.TopCmd      `cmd:"" help:"Show the most active habits."`
	Rename   cli.RenameCmd   `cmd:"" help:"Rename a habit."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a habit and its check-offs."`
	Seed     cli.SeedCmd     `cmd:"" help:"Populate sample habits with four weeks of history."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run storage and environment diagnostics."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitual"),
		kong.Description("Habit tracker with streak and completion analytics"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.DB),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Pick the storage backend from the file extension
	var store storage.Provider
	if strings.HasSuffix(CLI.DB, ".json") {
		store = storage.NewJSONStore(CLI.DB)
	} else {
		store = storage.NewSQLiteStore(CLI.DB)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
	}

	errors.Fatal(ctx.Run(appCtx))
}
