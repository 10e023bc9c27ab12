package cli

import (
	"fmt"
	"time"

	"github.com/tally-cli/tally/internal/heatmap"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Printf("%-30s  %10s  %10s  %s\n", "HABIT", "STREAK", "BEST", "LAST DONE")

	for _, habit := range habits {
		completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			return err
		}
		result := ctx.StreakCalculator().Calculate(habit, completions, now)

		last := result.LastCompletedDate
		if last == "" {
			last = "never"
		}

		name := habit.Name
		if habit.Emoji != "" {
			name = habit.Emoji + " " + name
		}

		fmt.Printf("%-30s  %10s  %10d  %s\n", name, formatStreak(result.Current), result.Longest, last)
	}

	all, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}
	counts := heatmap.DailyCounts(all, settings.HeatmapWindowDays, now)

	total := 0
	activeDays := len(counts)
	for _, n := range counts {
		total += n
	}
	fmt.Printf("\n%d completions across %d active days in the last %d days\n",
		total, activeDays, settings.HeatmapWindowDays)

	return nil
}
