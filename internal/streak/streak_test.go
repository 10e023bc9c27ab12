package streak

import (
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/models"
)

// Friday, Dec 26 2025. A fixed "now" keeps every scenario deterministic.
var now = time.Date(2025, 12, 26, 14, 30, 0, 0, time.UTC)

func dailyHabit() models.Habit {
	return models.Habit{
		ID:             "habit-1",
		Name:           "Meditate",
		RecurrenceType: models.RecurrenceDaily,
		Active:         true,
	}
}

func weeklyHabit(days ...time.Weekday) models.Habit {
	return models.Habit{
		ID:             "habit-1",
		Name:           "Gym",
		RecurrenceType: models.RecurrenceWeekly,
		RecurrenceDays: days,
		Active:         true,
	}
}

func completionOn(habitID string, daysAgo int) models.Completion {
	return models.Completion{
		ID:          "c",
		HabitID:     habitID,
		CompletedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestCalculate_NoCompletions(t *testing.T) {
	result := New().Calculate(dailyHabit(), nil, now)

	if result.Current != 0 || result.Longest != 0 {
		t.Errorf("expected zero streaks, got current=%d longest=%d", result.Current, result.Longest)
	}
	if result.LastCompletedDate != "" {
		t.Errorf("expected no last completed date, got %q", result.LastCompletedDate)
	}
}

func TestCalculate_ThreeConsecutiveDays(t *testing.T) {
	habit := dailyHabit()
	completions := []models.Completion{
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 1),
		completionOn(habit.ID, 2),
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 3 {
		t.Errorf("expected current streak 3, got %d", result.Current)
	}
	if result.Longest != 3 {
		t.Errorf("expected longest streak 3, got %d", result.Longest)
	}
	if result.LastCompletedDate != now.Format("2006-01-02") {
		t.Errorf("expected last completed date today, got %q", result.LastCompletedDate)
	}
}

func TestCalculate_GraceDayWhenTodayPending(t *testing.T) {
	// Yesterday and the day before are done, today isn't yet. The
	// streak survives until today is definitively missed.
	habit := dailyHabit()
	completions := []models.Completion{
		completionOn(habit.ID, 1),
		completionOn(habit.ID, 2),
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 2 {
		t.Errorf("expected current streak 2, got %d", result.Current)
	}
}

func TestCalculate_BrokenStreak(t *testing.T) {
	// Only a completion two days ago: both today and yesterday missed.
	habit := dailyHabit()
	completions := []models.Completion{completionOn(habit.ID, 2)}

	result := New().Calculate(habit, completions, now)

	if result.Current != 0 {
		t.Errorf("expected current streak 0, got %d", result.Current)
	}
	if result.Longest != 1 {
		t.Errorf("expected longest streak 1, got %d", result.Longest)
	}
	if result.LastCompletedDate != now.AddDate(0, 0, -2).Format("2006-01-02") {
		t.Errorf("unexpected last completed date %q", result.LastCompletedDate)
	}
}

func TestCalculate_WeeklyThreeFullWeeks(t *testing.T) {
	// Due Mon/Wed/Fri, every due day completed for 3 weeks ending on a
	// Friday (today). Non-due days contribute nothing.
	habit := weeklyHabit(time.Monday, time.Wednesday, time.Friday)

	var completions []models.Completion
	for daysAgo := 0; daysAgo < 21; daysAgo++ {
		d := now.AddDate(0, 0, -daysAgo)
		switch d.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
			completions = append(completions, completionOn(habit.ID, daysAgo))
		}
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 9 {
		t.Errorf("expected current streak 9 (3 weeks x 3 due days), got %d", result.Current)
	}
	if result.Longest != 9 {
		t.Errorf("expected longest streak 9, got %d", result.Longest)
	}
}

func TestCalculate_NonDueDayCompletionDoesNotChangeResult(t *testing.T) {
	habit := weeklyHabit(time.Monday, time.Wednesday, time.Friday)
	completions := []models.Completion{
		completionOn(habit.ID, 0), // Friday
		completionOn(habit.ID, 2), // Wednesday
	}

	before := New().Calculate(habit, completions, now)

	// Add a completion on Saturday, an excluded weekday.
	withExtra := append(completions, completionOn(habit.ID, 6))
	after := New().Calculate(habit, withExtra, now)

	if before.Current != after.Current || before.Longest != after.Longest {
		t.Errorf("non-due-day completion changed streaks: before=%+v after=%+v", before, after)
	}
}

func TestCalculate_DuplicateSameDayCountsOnce(t *testing.T) {
	habit := dailyHabit()
	completions := []models.Completion{
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 1),
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 2 {
		t.Errorf("expected current streak 2, got %d", result.Current)
	}
}

func TestCalculate_WeeklyEmptyDaySetNeverDue(t *testing.T) {
	// Malformed recurrence degrades to "never due" rather than erroring.
	habit := weeklyHabit()
	completions := []models.Completion{
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 1),
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 0 || result.Longest != 0 {
		t.Errorf("expected zero streaks for never-due habit, got %+v", result)
	}
	if result.LastCompletedDate == "" {
		t.Error("expected last completed date to still be reported")
	}
}

func TestCalculate_LongestExceedsCurrent(t *testing.T) {
	// A 5-day run a month ago beats the current 2-day run.
	habit := dailyHabit()
	var completions []models.Completion
	for daysAgo := 30; daysAgo < 35; daysAgo++ {
		completions = append(completions, completionOn(habit.ID, daysAgo))
	}
	completions = append(completions, completionOn(habit.ID, 0), completionOn(habit.ID, 1))

	result := New().Calculate(habit, completions, now)

	if result.Current != 2 {
		t.Errorf("expected current streak 2, got %d", result.Current)
	}
	if result.Longest != 5 {
		t.Errorf("expected longest streak 5, got %d", result.Longest)
	}
}

func TestCalculate_IgnoresOtherHabits(t *testing.T) {
	habit := dailyHabit()
	completions := []models.Completion{
		completionOn(habit.ID, 0),
		completionOn("other-habit", 1),
		completionOn("other-habit", 2),
	}

	result := New().Calculate(habit, completions, now)

	if result.Current != 1 {
		t.Errorf("expected current streak 1, got %d", result.Current)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	habit := weeklyHabit(time.Monday, time.Friday)
	completions := []models.Completion{
		completionOn(habit.ID, 0),
		completionOn(habit.ID, 4),
		completionOn(habit.ID, 7),
	}

	calc := New()
	first := calc.Calculate(habit, completions, now)
	second := calc.Calculate(habit, completions, now)

	if first != second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if first.Longest < first.Current {
		t.Errorf("longest (%d) must never be below current (%d)", first.Longest, first.Current)
	}
}

func TestCalculate_LookbackBoundsCurrentStreak(t *testing.T) {
	habit := dailyHabit()
	var completions []models.Completion
	for daysAgo := 0; daysAgo < 20; daysAgo++ {
		completions = append(completions, completionOn(habit.ID, daysAgo))
	}

	calc := &Calculator{LookbackDays: 10}
	result := calc.Calculate(habit, completions, now)

	if result.Current != 10 {
		t.Errorf("expected current streak capped at 10, got %d", result.Current)
	}
	// The longest scan is not subject to the lookback bound.
	if result.Longest != 20 {
		t.Errorf("expected longest streak 20, got %d", result.Longest)
	}
}

func TestIsDueDay(t *testing.T) {
	monday := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	if !IsDueDay(dailyHabit(), tuesday) {
		t.Error("daily habit should be due every day")
	}
	if !IsDueDay(weeklyHabit(time.Monday), monday) {
		t.Error("weekly habit should be due on a scheduled weekday")
	}
	if IsDueDay(weeklyHabit(time.Monday), tuesday) {
		t.Error("weekly habit should not be due on an unscheduled weekday")
	}

	custom := weeklyHabit(time.Monday)
	custom.RecurrenceType = models.RecurrenceCustom
	if !IsDueDay(custom, monday) {
		t.Error("custom recurrence should share weekly semantics")
	}
}
