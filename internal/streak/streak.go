package streak

import (
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

// Calculator derives current/longest streaks for a habit from its
// completion history. It holds no state beyond configuration and is
// safe for concurrent use.
type Calculator struct {
	// LookbackDays bounds the backward walk for the current streak.
	LookbackDays int
}

func New() *Calculator {
	return &Calculator{LookbackDays: constants.StreakLookbackDays}
}

// IsDueDay reports whether the habit is due on the given calendar date.
// Daily habits are due every day; weekly and custom habits are due on
// the weekdays in their recurrence day set. A weekly habit with an
// empty day set is never due.
func IsDueDay(habit models.Habit, date time.Time) bool {
	if habit.RecurrenceType == models.RecurrenceDaily {
		return true
	}
	return habit.IsWeekdayScheduled(date.Weekday())
}

// Calculate computes the streak state for habit as of now.
//
// Completions are interpreted at day granularity in now's location;
// time-of-day is discarded. Multiple completions on one day count
// once. Completions for other habits are ignored, though callers are
// expected to pre-filter.
//
// The current streak walks backward from today (or yesterday, if today
// has not been completed yet) counting consecutive completed due days.
// Days the habit is not due neither break nor extend the streak. The
// longest streak scans the full observed history and is not subject to
// the lookback bound.
func (c *Calculator) Calculate(habit models.Habit, completions []models.Completion, now time.Time) models.StreakResult {
	completed := completedDateSet(habit.ID, completions, now.Location())
	if len(completed) == 0 {
		return models.StreakResult{}
	}

	last := ""
	for d := range completed {
		if d > last {
			last = d
		}
	}

	today := startOfDay(now)

	// Anchor the walk at today, or at yesterday if today is still
	// pending (the streak survives until today is definitively missed).
	anchor := today
	if !completed[dateKey(today)] {
		yesterday := today.AddDate(0, 0, -1)
		if !completed[dateKey(yesterday)] {
			return models.StreakResult{
				Current:           0,
				Longest:           longestStreak(habit, completed),
				LastCompletedDate: last,
			}
		}
		anchor = yesterday
	}

	lookback := c.LookbackDays
	if lookback <= 0 {
		lookback = constants.StreakLookbackDays
	}

	current := 0
	for i := 0; i < lookback; i++ {
		d := anchor.AddDate(0, 0, -i)
		if !IsDueDay(habit, d) {
			continue
		}
		if !completed[dateKey(d)] {
			break
		}
		current++
	}

	longest := longestStreak(habit, completed)
	if current > longest {
		longest = current
	}

	return models.StreakResult{
		Current:           current,
		Longest:           longest,
		LastCompletedDate: last,
	}
}

// longestStreak scans the full range from the earliest to the latest
// completed date, counting the longest run of consecutive completed
// due days. O(calendar span of the history).
func longestStreak(habit models.Habit, completed map[string]bool) int {
	if len(completed) == 0 {
		return 0
	}

	earliest, latest := "", ""
	for d := range completed {
		if earliest == "" || d < earliest {
			earliest = d
		}
		if d > latest {
			latest = d
		}
	}

	start, err := time.Parse(constants.DateFormat, earliest)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.DateFormat, latest)
	if err != nil {
		return 0
	}
	totalDays := int(end.Sub(start).Hours()/24) + 1

	longest, run := 0, 0
	for i := 0; i < totalDays; i++ {
		d := start.AddDate(0, 0, i)
		if !IsDueDay(habit, d) {
			continue
		}
		if completed[dateKey(d)] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return longest
}

// completedDateSet normalizes completions to calendar-day keys in loc.
// Completions for other habits are dropped.
func completedDateSet(habitID string, completions []models.Completion, loc *time.Location) map[string]bool {
	set := make(map[string]bool, len(completions))
	for _, c := range completions {
		if c.HabitID != habitID {
			continue
		}
		set[dateKey(c.CompletedAt.In(loc))] = true
	}
	return set
}

func dateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
