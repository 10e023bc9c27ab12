package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/streak"
)

type HabitAddCmd struct {
	Name       string `arg:"" help:"Habit name."`
	Emoji      string `short:"e" help:"Emoji shown next to the habit."`
	Recurrence string `short:"r" help:"Recurrence type (daily|weekly|custom)." default:"daily"`
	Days       string `short:"w" help:"Comma-separated weekdays for weekly/custom recurrence."`
	Reminder   string `short:"t" help:"Reminder time (HH:MM)."`
	Priority   string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
}

func (c *HabitAddCmd) Validate() error {
	switch models.Priority(c.Priority) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return fmt.Errorf("priority must be low, medium, or high")
	}
	if c.Reminder != "" {
		if _, err := time.Parse("15:04", c.Reminder); err != nil {
			return fmt.Errorf("invalid reminder time, use HH:MM")
		}
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var recType models.RecurrenceType
	switch c.Recurrence {
	case "daily":
		recType = models.RecurrenceDaily
	case "weekly":
		recType = models.RecurrenceWeekly
	case "custom":
		recType = models.RecurrenceCustom
	default:
		return fmt.Errorf("invalid recurrence type: %s", c.Recurrence)
	}

	var days []time.Weekday
	if recType != models.RecurrenceDaily {
		if c.Days == "" {
			return fmt.Errorf("%s recurrence requires --days (e.g. mon,wed,fri)", c.Recurrence)
		}
		var err error
		if days, err = models.ParseWeekdays(c.Days); err != nil {
			return err
		}
	}

	habit := models.Habit{
		ID:             uuid.New().String(),
		Name:           c.Name,
		Emoji:          c.Emoji,
		RecurrenceType: recType,
		RecurrenceDays: days,
		ReminderTime:   c.Reminder,
		Priority:       models.Priority(c.Priority),
		Active:         true,
		CreatedAt:      time.Now(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", c.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	All bool `short:"a" help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.All, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	now := time.Now()
	todayStr := today()

	for _, habit := range habits {
		completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			return err
		}
		result := ctx.StreakCalculator().Calculate(habit, completions, now)

		mark := "○"
		for _, comp := range completions {
			if comp.CompletedAt.Format("2006-01-02") == todayStr {
				mark = "✓"
				break
			}
		}

		label := habit.Name
		if habit.Emoji != "" {
			label = habit.Emoji + " " + label
		}
		if habit.ArchivedAt != nil {
			label = "[ARCHIVED] " + label
		}

		fmt.Printf("%s %-30s  %-24s  streak: %s  (best: %d)\n",
			mark, label, formatRecurrence(habit), formatStreak(result.Current), result.Longest)
	}

	return nil
}

type HabitDoneCmd struct {
	ID string `arg:"" help:"Habit ID (or unambiguous name prefix)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: time.Now(),
	}
	if err := ctx.Store.AddCompletion(completion); err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return err
	}
	result := ctx.StreakCalculator().Calculate(habit, completions, time.Now())

	fmt.Printf("Completed %s — streak: %s\n", habit.Name, formatStreak(result.Current))
	return nil
}

type HabitUndoCmd struct {
	ID string `arg:"" help:"Habit ID (or unambiguous name prefix)."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.RemoveCompletionForDay(habit.ID, today()); err != nil {
		return err
	}

	fmt.Printf("Removed today's completion for %s\n", habit.Name)
	return nil
}

type HabitArchiveCmd struct {
	ID string `arg:"" help:"Habit ID (or unambiguous name prefix)."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID (or unambiguous name prefix)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s (restore with 'tally habit restore %s')\n", habit.Name, habit.ID)
	return nil
}

type HabitRestoreCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.RestoreHabit(c.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.ID)
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit ID (or unambiguous name prefix)."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return err
	}
	result := ctx.StreakCalculator().Calculate(habit, completions, time.Now())

	fmt.Printf("%s %s\n", habit.Emoji, habit.Name)
	fmt.Printf("  Recurrence:     %s\n", formatRecurrence(habit))
	fmt.Printf("  Priority:       %s\n", habit.Priority)
	if habit.ReminderTime != "" {
		fmt.Printf("  Reminder:       %s\n", habit.ReminderTime)
	}
	fmt.Printf("  Current streak: %s\n", formatStreak(result.Current))
	fmt.Printf("  Longest streak: %d\n", result.Longest)
	if result.LastCompletedDate != "" {
		fmt.Printf("  Last completed: %s\n", result.LastCompletedDate)
	}
	fmt.Printf("  Due today:      %t\n", streak.IsDueDay(habit, time.Now()))

	return nil
}

// resolveHabit finds a habit by exact ID first, then by unique name
// prefix match.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if habit, err := ctx.Store.GetHabit(ref); err == nil {
		return habit, nil
	}

	habits, err := ctx.Store.GetAllHabits(true, false)
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, habit := range habits {
		if len(ref) > 0 && len(habit.Name) >= len(ref) && equalsPrefixFold(habit.Name, ref) {
			matches = append(matches, habit)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		return models.Habit{}, fmt.Errorf("%q is ambiguous: %d habits match", ref, len(matches))
	}
}
