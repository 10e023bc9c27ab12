package validation

import (
	"fmt"
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictDuplicateTaskName  ConflictType = "duplicate_task_name"
	ConflictEmptyRecurrence    ConflictType = "empty_recurrence_days"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictInvalidDateTime    ConflictType = "invalid_datetime"
)

// Conflict represents a detected problem in habits or tasks
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit/task names involved
	IDs         []string // IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates habits and tasks
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks habit definitions for problems. A weekly habit
// with an empty day set is flagged here as a warning even though the
// streak engine tolerates it (the habit is simply never due).
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, habit := range habits {
		if habit.DeletedAt != nil || habit.Name == "" {
			continue
		}
		nameCount[habit.Name] = append(nameCount[habit.Name], habit.ID)
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	for _, habit := range habits {
		if habit.DeletedAt != nil {
			continue
		}

		switch habit.RecurrenceType {
		case models.RecurrenceWeekly, models.RecurrenceCustom:
			if len(habit.RecurrenceDays) == 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEmptyRecurrence,
					Description: fmt.Sprintf("Habit %q has %s recurrence with no weekdays and will never be due", habit.Name, habit.RecurrenceType),
					Items:       []string{habit.Name},
					IDs:         []string{habit.ID},
				})
			}
			for _, d := range habit.RecurrenceDays {
				if d < time.Sunday || d > time.Saturday {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictInvalidWeekday,
						Description: fmt.Sprintf("Habit %q has out-of-range weekday %d", habit.Name, d),
						Items:       []string{habit.Name},
						IDs:         []string{habit.ID},
					})
				}
			}
		}

		if habit.ReminderTime != "" && !isValidClock(habit.ReminderTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Habit %q has invalid reminder time: %s", habit.Name, habit.ReminderTime),
				Items:       []string{habit.Name},
				IDs:         []string{habit.ID},
			})
		}
	}

	return result
}

// ValidateTasks checks one-time tasks for problems
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, task := range tasks {
		if task.DeletedAt != nil || task.Name == "" {
			continue
		}
		nameCount[task.Name] = append(nameCount[task.Name], task.ID)
	}
	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("Duplicate task name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}
		if task.DueDate != "" && !isValidDate(task.DueDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Task %q has invalid due date: %s", task.Name, task.DueDate),
				Items:       []string{task.Name},
				IDs:         []string{task.ID},
			})
		}
	}

	return result
}

func isValidClock(s string) bool {
	_, err := time.Parse(constants.ClockFormat, s)
	return err == nil
}

func isValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
