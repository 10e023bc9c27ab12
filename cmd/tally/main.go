package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tally-cli/tally/internal/cli"
	"github.com/tally-cli/tally/internal/logger"
	"github.com/tally-cli/tally/internal/storage"
	"github.com/tally-cli/tally/internal/streak"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/tally/tally.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize tally storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Stats   cli.StatsCmd   `cmd:"" help:"Show streak statistics for all habits."`
	Heatmap cli.HeatmapCmd `cmd:"" help:"Show the completion heatmap."`
	Export  cli.ExportCmd  `cmd:"" help:"Export all data to JSON."`
	Remind  cli.RemindCmd  `cmd:"" help:"Send reminders for habits due now."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Habit   struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a new habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List all habits."`
		Done    cli.HabitDoneCmd    `cmd:"" help:"Mark a habit done for today."`
		Undo    cli.HabitUndoCmd    `cmd:"" help:"Remove today's completion for a habit."`
		Show    cli.HabitShowCmd    `cmd:"" help:"Show details for a habit."`
		Archive cli.HabitArchiveCmd `cmd:"" help:"Archive a habit."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit."`
		Restore cli.HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
	} `cmd:"" help:"Manage habits."`
	Task struct {
		Add     cli.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    cli.TaskListCmd    `cmd:"" help:"List all tasks."`
		Done    cli.TaskDoneCmd    `cmd:"" help:"Toggle a task's completion."`
		Delete  cli.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore cli.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Manage tasks."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tally"),
		kong.Description("Habit tracker with streaks and an activity heatmap"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Streaks: streak.New(),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
