package storage

import "github.com/tally-cli/tally/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	RemoveCompletionForDay(habitID, day string) error
	GetCompletionsForHabit(habitID string) ([]models.Completion, error)
	GetCompletionsForDay(day string) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Utils
	GetConfigPath() string
}
