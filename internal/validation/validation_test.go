package validation

import (
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/models"
)

func TestValidateHabits_DuplicateNames(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "Read", RecurrenceType: models.RecurrenceDaily, Active: true},
		{ID: "2", Name: "Gym", RecurrenceType: models.RecurrenceDaily, Active: true},
		{ID: "3", Name: "Read", RecurrenceType: models.RecurrenceDaily, Active: true}, // Duplicate
	}

	result := validator.ValidateHabits(habits)

	if !result.HasConflicts() {
		t.Error("Expected to detect duplicate habit names")
	}

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictDuplicateHabitName {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected ConflictDuplicateHabitName conflict type")
	}
}

func TestValidateHabits_EmptyRecurrenceDays(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "Gym", RecurrenceType: models.RecurrenceWeekly, Active: true},
	}

	result := validator.ValidateHabits(habits)

	if !result.HasConflicts() {
		t.Fatal("Expected weekly habit with no weekdays to be flagged")
	}
	if result.Conflicts[0].Type != ConflictEmptyRecurrence {
		t.Errorf("Expected ConflictEmptyRecurrence, got %s", result.Conflicts[0].Type)
	}
}

func TestValidateHabits_InvalidReminderTime(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "Read", RecurrenceType: models.RecurrenceDaily, ReminderTime: "25:00", Active: true},
		{ID: "2", Name: "Gym", RecurrenceType: models.RecurrenceDaily, ReminderTime: "12:70", Active: true},
		{ID: "3", Name: "Walk", RecurrenceType: models.RecurrenceDaily, ReminderTime: "09:30", Active: true},
	}

	result := validator.ValidateHabits(habits)

	count := 0
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictInvalidDateTime {
			count++
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 invalid reminder times, got %d", count)
	}
}

func TestValidateHabits_DeletedHabitsSkipped(t *testing.T) {
	validator := New()
	now := time.Now()

	habits := []models.Habit{
		{ID: "1", Name: "Read", RecurrenceType: models.RecurrenceWeekly, DeletedAt: &now},
	}

	result := validator.ValidateHabits(habits)

	if result.HasConflicts() {
		t.Errorf("Deleted habits should not be validated, got: %s", result.FormatReport())
	}
}

func TestValidateTasks_InvalidDueDate(t *testing.T) {
	validator := New()

	tasks := []models.Task{
		{ID: "1", Name: "File taxes", DueDate: "2026-04-15"},
		{ID: "2", Name: "Renew passport", DueDate: "not-a-date"},
	}

	result := validator.ValidateTasks(tasks)

	if !result.HasConflicts() {
		t.Fatal("Expected invalid due date to be flagged")
	}
	if result.Conflicts[0].Type != ConflictInvalidDateTime {
		t.Errorf("Expected ConflictInvalidDateTime, got %s", result.Conflicts[0].Type)
	}
}

func TestFormatReport_NoConflicts(t *testing.T) {
	result := ValidationResult{}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("Unexpected report: %q", result.FormatReport())
	}
}
