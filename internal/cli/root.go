package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/tally-cli/tally/internal/backup"
	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/logger"
	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/storage"
	"github.com/tally-cli/tally/internal/streak"
)

type Context struct {
	Store   storage.Provider
	Streaks *streak.Calculator
}

// StreakCalculator returns the streak calculator with the stored
// lookback setting applied. Falls back to defaults when settings are
// unavailable (store not loaded yet).
func (c *Context) StreakCalculator() *streak.Calculator {
	if settings, err := c.Store.GetSettings(); err == nil && settings.StreakLookbackDays > 0 {
		c.Streaks.LookbackDays = settings.StreakLookbackDays
	}
	return c.Streaks
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func formatRecurrence(habit models.Habit) string {
	switch habit.RecurrenceType {
	case models.RecurrenceDaily:
		return "daily"
	case models.RecurrenceWeekly, models.RecurrenceCustom:
		if len(habit.RecurrenceDays) > 0 {
			var days []string
			for _, wd := range habit.RecurrenceDays {
				days = append(days, wd.String()[:3])
			}
			return fmt.Sprintf("%s on %s", habit.RecurrenceType, strings.Join(days, ","))
		}
		return string(habit.RecurrenceType)
	default:
		return "unknown"
	}
}

// formatStreak renders a streak count with a flame for every milestone
// crossed (7/30/100 days).
func formatStreak(current int) string {
	flames := ""
	for _, milestone := range []int{constants.StreakMilestoneSmall, constants.StreakMilestoneMedium, constants.StreakMilestoneLarge} {
		if current >= milestone {
			flames += "🔥"
		}
	}
	if flames == "" {
		return fmt.Sprintf("%d", current)
	}
	return fmt.Sprintf("%d %s", current, flames)
}

func today() string {
	return time.Now().Format(constants.DateFormat)
}

// equalsPrefixFold reports whether name starts with prefix,
// case-insensitively. Callers guarantee len(name) >= len(prefix).
func equalsPrefixFold(name, prefix string) bool {
	return strings.EqualFold(name[:len(prefix)], prefix)
}
