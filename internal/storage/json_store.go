package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

type Store struct {
	Version     int                          `json:"version"`
	Settings    Settings                     `json:"settings"`
	Habits      map[string]models.Habit      `json:"habits"`
	Completions map[string]models.Completion `json:"completions"`
	Tasks       map[string]models.Task       `json:"tasks"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		Settings:    DefaultSettings(),
		Habits:      make(map[string]models.Habit),
		Completions: make(map[string]models.Completion),
		Tasks:       make(map[string]models.Task),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Completions == nil {
		s.store.Completions = make(map[string]models.Completion)
	}
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if habit.DeletedAt != nil && !includeDeleted {
			continue
		}
		if habit.ArchivedAt != nil && !includeArchived {
			continue
		}
		habits = append(habits, habit)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) ArchiveHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found: %s", id)
	}
	if habit.ArchivedAt != nil {
		return fmt.Errorf("habit with id %s is already archived", id)
	}

	now := time.Now().UTC()
	habit.ArchivedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit with id %s not found", id)
	}
	if habit.DeletedAt != nil {
		return fmt.Errorf("habit with id %s is already deleted", id)
	}

	now := time.Now().UTC()
	habit.DeletedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) RestoreHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit with id %s not found", id)
	}
	if habit.DeletedAt == nil {
		return fmt.Errorf("cannot restore a habit that is not deleted: %s", id)
	}

	habit.DeletedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) AddCompletion(c models.Completion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Completions[c.ID] = c
	return s.save()
}

func (s *JSONStore) RemoveCompletionForDay(habitID, day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	removed := false
	for id, c := range s.store.Completions {
		if c.HabitID == habitID && c.CompletedAt.Format(constants.DateFormat) == day {
			delete(s.store.Completions, id)
			removed = true
		}
	}
	if !removed {
		return fmt.Errorf("no completion found for habit %s on %s", habitID, day)
	}

	return s.save()
}

func (s *JSONStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var completions []models.Completion
	for _, c := range s.store.Completions {
		if c.HabitID == habitID {
			completions = append(completions, c)
		}
	}
	sortCompletions(completions)

	return completions, nil
}

func (s *JSONStore) GetCompletionsForDay(day string) ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var completions []models.Completion
	for _, c := range s.store.Completions {
		if c.CompletedAt.Format(constants.DateFormat) == day {
			completions = append(completions, c)
		}
	}
	sortCompletions(completions)

	return completions, nil
}

func (s *JSONStore) GetAllCompletions() ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	completions := make([]models.Completion, 0, len(s.store.Completions))
	for _, c := range s.store.Completions {
		completions = append(completions, c)
	}
	sortCompletions(completions)

	return completions, nil
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}

	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, task := range s.store.Tasks {
		if task.DeletedAt == nil {
			tasks = append(tasks, task)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Tasks[task.ID]; !ok {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task with id %s not found", id)
	}
	if task.DeletedAt != nil {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	now := time.Now().UTC()
	task.DeletedAt = &now
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) RestoreTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task with id %s not found", id)
	}
	if task.DeletedAt == nil {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	task.DeletedAt = nil
	s.store.Tasks[id] = task
	return s.save()
}

func sortCompletions(completions []models.Completion) {
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].CompletedAt.Before(completions[j].CompletedAt)
	})
}
