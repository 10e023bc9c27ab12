package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/models"
)

func setupTestSQLiteStore(t *testing.T) (*SQLiteStore, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}

	return store, cleanup
}

func setupTestJSONStore(t *testing.T) *JSONStore {
	tempDir := t.TempDir()
	store := NewJSONStore(filepath.Join(tempDir, "test.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

func testHabit(id string) models.Habit {
	return models.Habit{
		ID:             id,
		Name:           "Read",
		Emoji:          "📚",
		RecurrenceType: models.RecurrenceWeekly,
		RecurrenceDays: []time.Weekday{time.Monday, time.Thursday},
		Priority:       models.PriorityMedium,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestSQLiteHabitRoundTrip(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := testHabit("habit-1")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	got, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}

	if got.Name != habit.Name || got.RecurrenceType != habit.RecurrenceType {
		t.Errorf("habit fields lost in round trip: %+v", got)
	}
	if len(got.RecurrenceDays) != 2 || got.RecurrenceDays[0] != time.Monday || got.RecurrenceDays[1] != time.Thursday {
		t.Errorf("recurrence days lost in round trip: %v", got.RecurrenceDays)
	}
}

func TestSQLiteHabitSoftDelete(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	habit := testHabit("habit-1")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if err := store.DeleteHabit("habit-1"); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}

	if _, err := store.GetHabit("habit-1"); err == nil {
		t.Error("expected error when getting deleted habit, got nil")
	}

	// Deleting again should fail
	if err := store.DeleteHabit("habit-1"); err == nil {
		t.Error("expected error when deleting an already-deleted habit")
	}

	// Deleted habits are excluded by default but visible on request
	visible, err := store.GetAllHabits(false, false)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("deleted habit should not appear in default listing, got %d", len(visible))
	}

	all, err := store.GetAllHabits(false, true)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 habit when including deleted, got %d", len(all))
	}

	if err := store.RestoreHabit("habit-1"); err != nil {
		t.Fatalf("failed to restore habit: %v", err)
	}
	if _, err := store.GetHabit("habit-1"); err != nil {
		t.Errorf("restored habit should be retrievable: %v", err)
	}
}

func TestSQLiteCompletionQueries(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	day := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	completions := []models.Completion{
		{ID: "c1", HabitID: "habit-1", CompletedAt: day},
		{ID: "c2", HabitID: "habit-1", CompletedAt: day.AddDate(0, 0, -1)},
		{ID: "c3", HabitID: "habit-2", CompletedAt: day},
	}
	for _, c := range completions {
		if err := store.AddCompletion(c); err != nil {
			t.Fatalf("failed to add completion: %v", err)
		}
	}

	forHabit, err := store.GetCompletionsForHabit("habit-1")
	if err != nil {
		t.Fatalf("failed to query completions: %v", err)
	}
	if len(forHabit) != 2 {
		t.Errorf("expected 2 completions for habit-1, got %d", len(forHabit))
	}

	forDay, err := store.GetCompletionsForDay("2025-06-15")
	if err != nil {
		t.Fatalf("failed to query completions by day: %v", err)
	}
	if len(forDay) != 2 {
		t.Errorf("expected 2 completions on 2025-06-15, got %d", len(forDay))
	}

	if err := store.RemoveCompletionForDay("habit-1", "2025-06-15"); err != nil {
		t.Fatalf("failed to remove completion: %v", err)
	}

	forHabit, err = store.GetCompletionsForHabit("habit-1")
	if err != nil {
		t.Fatalf("failed to query completions: %v", err)
	}
	if len(forHabit) != 1 {
		t.Errorf("expected 1 completion after removal, got %d", len(forHabit))
	}

	// Removing when nothing matches is an error
	if err := store.RemoveCompletionForDay("habit-1", "2025-06-15"); err == nil {
		t.Error("expected error removing a completion that does not exist")
	}
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("expected schema version %d, got %d", LatestSchemaVersion(), version)
	}

	// Re-running migrations must be a no-op
	if err := store.runMigrations(); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}
}

func TestJSONStorePersistsAcrossLoads(t *testing.T) {
	store := setupTestJSONStore(t)

	habit := testHabit("habit-1")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := store.AddCompletion(models.Completion{
		ID: "c1", HabitID: "habit-1", CompletedAt: time.Now(),
	}); err != nil {
		t.Fatalf("failed to add completion: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}

	if _, err := reopened.GetHabit("habit-1"); err != nil {
		t.Errorf("habit missing after reload: %v", err)
	}
	completions, err := reopened.GetAllCompletions()
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected 1 completion after reload, got %d", len(completions))
	}
}

func TestJSONStoreTaskLifecycle(t *testing.T) {
	store := setupTestJSONStore(t)

	task := models.Task{
		ID:        "task-1",
		Name:      "File taxes",
		DueDate:   "2026-04-15",
		Priority:  models.PriorityHigh,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	task.Completed = true
	if err := store.UpdateTask(task); err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	got, err := store.GetTask("task-1")
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if !got.Completed {
		t.Error("task completion flag not persisted")
	}

	if err := store.DeleteTask("task-1"); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if _, err := store.GetTask("task-1"); err == nil {
		t.Error("expected error getting deleted task")
	}
	if err := store.RestoreTask("task-1"); err != nil {
		t.Fatalf("failed to restore task: %v", err)
	}
	if _, err := store.GetTask("task-1"); err != nil {
		t.Errorf("restored task should be retrievable: %v", err)
	}
}
