package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/heatmap"
	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/storage"
	"github.com/tally-cli/tally/internal/streak"
	"github.com/tally-cli/tally/internal/tui/components/habits"
	"github.com/tally-cli/tally/internal/tui/components/tasklist"
	"github.com/tally-cli/tally/internal/validation"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateTasks
	StateHeatmap
	StateAddHabit
	StateAddTask
	StateConfirmDeleteHabit
	StateConfirmDeleteTask
)

// Number of top-level tabs; states past this are modal.
const tabCount = 3

type HabitFormModel struct {
	Name         string
	Emoji        string
	Recurrence   models.RecurrenceType
	Days         string
	ReminderTime string
	Priority     models.Priority
}

type TaskFormModel struct {
	Name     string
	DueDate  string
	Priority models.Priority
}

type Model struct {
	store             storage.Provider
	streaks           *streak.Calculator
	state             SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habits.Model
	taskList          tasklist.Model
	heatmapView       string
	form              *huh.Form
	habitForm         *HabitFormModel
	taskForm          *TaskFormModel
	habitToDeleteID   string
	taskToDeleteID    string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, streaks *streak.Calculator) Model {
	m := Model{
		store:       store,
		streaks:     streaks,
		state:       StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, 0, 0),
		taskList:    tasklist.New(nil, 0, 0),
	}

	m.refreshHabits()
	m.refreshTasks()
	m.refreshHeatmap()
	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits, StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateHabits, StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshHabits rebuilds the habit list items with current streaks and
// today's completion marks.
func (m *Model) refreshHabits() {
	habitsList, err := m.store.GetAllHabits(false, true)
	if err != nil {
		return
	}

	now := time.Now()
	today := now.Format(constants.DateFormat)

	doneToday := make(map[string]bool)
	if todays, err := m.store.GetCompletionsForDay(today); err == nil {
		for _, comp := range todays {
			doneToday[comp.HabitID] = true
		}
	}

	byHabit := make(map[string][]models.Completion)
	if all, err := m.store.GetAllCompletions(); err == nil {
		for _, comp := range all {
			byHabit[comp.HabitID] = append(byHabit[comp.HabitID], comp)
		}
	}

	items := make([]habits.Item, len(habitsList))
	for i, h := range habitsList {
		items[i] = habits.Item{
			Habit:     h,
			Streak:    m.streaks.Calculate(h, byHabit[h.ID], now),
			DoneToday: doneToday[h.ID],
			IsDeleted: h.DeletedAt != nil,
		}
	}
	m.habitsModel.SetItems(items)
}

func (m *Model) refreshTasks() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		tasks = []models.Task{}
	}
	m.taskList.SetTasks(tasks)
}

func (m *Model) refreshHeatmap() {
	completions, err := m.store.GetAllCompletions()
	if err != nil {
		m.heatmapView = "heatmap unavailable"
		return
	}

	now := time.Now()
	totalDays := constants.HeatmapWeeks * 7
	counts := heatmap.DailyCounts(completions, totalDays, now)
	grid := heatmap.BuildWeekGrid(counts, totalDays, now)
	m.heatmapView = heatmap.Render(grid, now)
}

// updateValidationStatus runs validation over habits and tasks and
// records a warning summary for the status line.
func (m *Model) updateValidationStatus() {
	habitsList, err := m.store.GetAllHabits(true, false)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	validator := validation.New()
	habitResult := validator.ValidateHabits(habitsList)
	taskResult := validator.ValidateTasks(tasks)

	total := len(habitResult.Conflicts) + len(taskResult.Conflicts)
	if total > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", total)
	} else {
		m.validationWarning = ""
	}
}

// NewHabitForm builds the add-habit form.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Description("Optional").
				Value(&fm.Emoji),
			huh.NewSelect[models.RecurrenceType]().
				Title("Recurrence").
				Options(
					huh.NewOption("Daily", models.RecurrenceDaily),
					huh.NewOption("Weekly", models.RecurrenceWeekly),
					huh.NewOption("Custom", models.RecurrenceCustom),
				).
				Value(&fm.Recurrence),
			huh.NewInput().
				Title("Days").
				Description("For weekly/custom, e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := models.ParseWeekdays(s)
					return err
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Optional").
				Value(&fm.ReminderTime).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := time.Parse(constants.ClockFormat, s)
					return err
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewTaskForm builds the add-task form.
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD)").
				Description("Optional").
				Value(&fm.DueDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := time.Parse(constants.DateFormat, s)
					return err
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}
