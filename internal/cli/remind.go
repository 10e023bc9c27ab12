package cli

import (
	"fmt"
	"time"

	"github.com/tally-cli/tally/internal/notifier"
	"github.com/tally-cli/tally/internal/streak"
)

type RemindCmd struct {
	DryRun bool `help:"Print reminders instead of sending them."`
}

// Run sends a reminder for every active habit that is due today, has a
// reminder time at or before now, and has not been completed today.
// Intended to be invoked periodically (cron or the tray app's timer).
func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !settings.RemindersEnabled {
		fmt.Println("Reminders are disabled in settings.")
		return nil
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	now := time.Now()
	nowClock := now.Format("15:04")
	todayStr := today()

	completedToday := make(map[string]bool)
	todays, err := ctx.Store.GetCompletionsForDay(todayStr)
	if err != nil {
		return err
	}
	for _, comp := range todays {
		completedToday[comp.HabitID] = true
	}

	n := notifier.New()
	sent := 0

	for _, habit := range habits {
		if !habit.Active || habit.ReminderTime == "" {
			continue
		}
		if !streak.IsDueDay(habit, now) {
			continue
		}
		if habit.ReminderTime > nowClock {
			continue
		}
		if completedToday[habit.ID] {
			continue
		}

		text := fmt.Sprintf("%s Time for your habit: %s", habit.Emoji, habit.Name)
		if c.DryRun {
			fmt.Printf("[dry-run] %s\n", text)
			sent++
			continue
		}

		if err := n.Notify(text); err != nil {
			return fmt.Errorf("failed to send reminder for %q: %w", habit.Name, err)
		}
		sent++
	}

	if sent == 0 {
		fmt.Println("No reminders due.")
	} else {
		fmt.Printf("Sent %d reminder(s).\n", sent)
	}

	return nil
}
