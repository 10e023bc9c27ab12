package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tally-cli/tally/internal/models"
)

// migrations are applied in order; schema_migrations records the last
// applied version. New schema changes append a new entry.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		emoji TEXT NOT NULL DEFAULT '',
		recurrence_type TEXT NOT NULL,
		recurrence_days TEXT NOT NULL DEFAULT '[]',
		reminder_time TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		archived_at TEXT,
		deleted_at TEXT
	);
	CREATE TABLE IF NOT EXISTS completions (
		id TEXT PRIMARY KEY,
		habit_id TEXT NOT NULL,
		completed_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_completions_habit ON completions(habit_id);
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		due_date TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at TEXT NOT NULL,
		deleted_at TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(substr(completed_at, 1, 10));`,
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.runMigrations()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB exposes the underlying connection for diagnostics (doctor).
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) runMigrations() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return err
	}

	current, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, len(migrations))
	}

	for v := current; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", v+1, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			v+1, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d failed: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// LatestSchemaVersion returns the version this binary migrates to.
func LatestSchemaVersion() int {
	return len(migrations)
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "streak_lookback_days":
			if settings.StreakLookbackDays, err = strconv.Atoi(value); err != nil {
				return Settings{}, fmt.Errorf("parsing streak_lookback_days: %w", err)
			}
		case "heatmap_window_days":
			if settings.HeatmapWindowDays, err = strconv.Atoi(value); err != nil {
				return Settings{}, fmt.Errorf("parsing heatmap_window_days: %w", err)
			}
		case "reminders_enabled":
			settings.RemindersEnabled = value == "true"
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, rows.Err()
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("streak_lookback_days", strconv.Itoa(settings.StreakLookbackDays)); err != nil {
		return err
	}
	if _, err := stmt.Exec("heatmap_window_days", strconv.Itoa(settings.HeatmapWindowDays)); err != nil {
		return err
	}
	if _, err := stmt.Exec("reminders_enabled", strconv.FormatBool(settings.RemindersEnabled)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, emoji, recurrence_type, recurrence_days, reminder_time,
		       priority, active, created_at, archived_at, deleted_at
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)

	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return habit, err
}

func (s *SQLiteStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := `
		SELECT id, name, emoji, recurrence_type, recurrence_days, reminder_time,
		       priority, active, created_at, archived_at, deleted_at
		FROM habits WHERE 1=1`
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	days := make([]int, 0, len(habit.RecurrenceDays))
	for _, d := range habit.RecurrenceDays {
		days = append(days, int(d))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to marshal recurrence days: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO habits (
			id, name, emoji, recurrence_type, recurrence_days, reminder_time,
			priority, active, created_at, archived_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Emoji, habit.RecurrenceType, string(daysJSON), habit.ReminderTime,
		habit.Priority, habit.Active, habit.CreatedAt.UTC().Format(time.RFC3339),
		nullTime(habit.ArchivedAt), nullTime(habit.DeletedAt),
	)
	return err
}

func (s *SQLiteStore) ArchiveHabit(id string) error {
	res, err := s.db.Exec(
		"UPDATE habits SET archived_at = ? WHERE id = ? AND deleted_at IS NULL AND archived_at IS NULL",
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	// Soft delete: set deleted_at instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit with id %s not found", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("habit with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE habits SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM habits WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit with id %s not found", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a habit that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE habits SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) AddCompletion(c models.Completion) error {
	_, err := s.db.Exec(
		"INSERT INTO completions (id, habit_id, completed_at) VALUES (?, ?, ?)",
		c.ID, c.HabitID, c.CompletedAt.Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) RemoveCompletionForDay(habitID, day string) error {
	res, err := s.db.Exec(
		"DELETE FROM completions WHERE habit_id = ? AND substr(completed_at, 1, 10) = ?",
		habitID, day,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no completion found for habit %s on %s", habitID, day)
	}
	return nil
}

func (s *SQLiteStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.queryCompletions(
		"SELECT id, habit_id, completed_at FROM completions WHERE habit_id = ? ORDER BY completed_at",
		habitID,
	)
}

func (s *SQLiteStore) GetCompletionsForDay(day string) ([]models.Completion, error) {
	return s.queryCompletions(
		"SELECT id, habit_id, completed_at FROM completions WHERE substr(completed_at, 1, 10) = ?",
		day,
	)
}

func (s *SQLiteStore) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions("SELECT id, habit_id, completed_at FROM completions ORDER BY completed_at")
}

func (s *SQLiteStore) queryCompletions(query string, args ...any) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var completedAt string
		if err := rows.Scan(&c.ID, &c.HabitID, &completedAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid completion timestamp %q: %w", completedAt, err)
		}
		c.CompletedAt = t
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, name, due_date, completed, priority, created_at, deleted_at
		FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return task, err
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, name, due_date, completed, priority, created_at, deleted_at
		FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (id, name, due_date, completed, priority, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Name, task.DueDate, task.Completed, task.Priority,
		task.CreatedAt.UTC().Format(time.RFC3339), nullTime(task.DeletedAt),
	)
	return err
}

func (s *SQLiteStore) DeleteTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE tasks SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE tasks SET deleted_at = NULL WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var recType, daysJSON, priority, createdAt string
	var archivedAt, deletedAt sql.NullString

	err := row.Scan(
		&h.ID, &h.Name, &h.Emoji, &recType, &daysJSON, &h.ReminderTime,
		&priority, &h.Active, &createdAt, &archivedAt, &deletedAt,
	)
	if err != nil {
		return models.Habit{}, err
	}

	h.RecurrenceType = models.RecurrenceType(recType)
	h.Priority = models.Priority(priority)

	var days []int
	if err := json.Unmarshal([]byte(daysJSON), &days); err == nil {
		for _, d := range days {
			h.RecurrenceDays = append(h.RecurrenceDays, time.Weekday(d))
		}
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		h.CreatedAt = t
	}
	h.ArchivedAt = parseNullTime(archivedAt)
	h.DeletedAt = parseNullTime(deletedAt)

	return h, nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var priority, createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.DueDate, &t.Completed, &priority, &createdAt, &deletedAt)
	if err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = parsed
	}
	t.DeletedAt = parseNullTime(deletedAt)

	return t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s with id %s not found or not updatable", kind, id)
	}
	return nil
}
