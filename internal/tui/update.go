package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/tui/components/habits"
	"github.com/tally-cli/tally/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-6)
		m.taskList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateAddTask:
		return m.updateAddTask(msg)
	case StateConfirmDeleteHabit:
		return m.updateConfirmDeleteHabit(msg)
	case StateConfirmDeleteTask:
		return m.updateConfirmDeleteTask(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}

	if handled, hcmd := m.handleComponentMsg(msg); handled {
		return m, hcmd
	}

	return m, cmd
}

func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Recurrence: models.RecurrenceDaily,
			Priority:   models.PriorityMedium,
		}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habits.MarkHabitMsg:
		comp := models.Completion{
			ID:          uuid.New().String(),
			HabitID:     msg.ID,
			CompletedAt: time.Now(),
		}
		if err := m.store.AddCompletion(comp); err == nil {
			m.refreshHabits()
			m.refreshHeatmap()
		}
		return true, nil

	case habits.UnmarkHabitMsg:
		today := time.Now().Format(constants.DateFormat)
		if err := m.store.RemoveCompletionForDay(msg.ID, today); err == nil {
			m.refreshHabits()
			m.refreshHeatmap()
		}
		return true, nil

	case habits.ArchiveHabitMsg:
		if err := m.store.ArchiveHabit(msg.ID); err == nil {
			m.refreshHabits()
		}
		return true, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDeleteHabit
		return true, nil

	case habits.RestoreHabitMsg:
		if err := m.store.RestoreHabit(msg.ID); err == nil {
			m.refreshHabits()
			m.updateValidationStatus()
		}
		return true, nil

	case tasklist.AddTaskMsg:
		m.taskForm = &TaskFormModel{
			Priority: models.PriorityMedium,
		}
		m.form = NewTaskForm(m.taskForm)
		m.state = StateAddTask
		return true, m.form.Init()

	case tasklist.ToggleTaskMsg:
		task, err := m.store.GetTask(msg.ID)
		if err == nil {
			task.Completed = !task.Completed
			if err := m.store.UpdateTask(task); err == nil {
				m.refreshTasks()
			}
		}
		return true, nil

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDeleteTask
		return true, nil

	case tasklist.RestoreTaskMsg:
		if err := m.store.RestoreTask(msg.ID); err == nil {
			m.refreshTasks()
			m.updateValidationStatus()
		}
		return true, nil
	}

	return false, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		habit := models.Habit{
			ID:             uuid.New().String(),
			Name:           m.habitForm.Name,
			Emoji:          m.habitForm.Emoji,
			RecurrenceType: m.habitForm.Recurrence,
			ReminderTime:   m.habitForm.ReminderTime,
			Priority:       m.habitForm.Priority,
			Active:         true,
			CreatedAt:      time.Now(),
		}
		if m.habitForm.Days != "" {
			// Parse errors were already rejected by the form validator.
			habit.RecurrenceDays, _ = models.ParseWeekdays(m.habitForm.Days)
		}
		if err := m.store.AddHabit(habit); err == nil {
			m.refreshHabits()
			m.updateValidationStatus()
			m.state = StateHabits
		} else {
			// Stay in form state on error to allow retry
			m.form.State = huh.StateNormal
		}
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateAddTask(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTasks
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		task := models.Task{
			ID:        uuid.New().String(),
			Name:      m.taskForm.Name,
			DueDate:   m.taskForm.DueDate,
			Priority:  m.taskForm.Priority,
			CreatedAt: time.Now(),
		}
		if err := m.store.AddTask(task); err == nil {
			m.refreshTasks()
			m.updateValidationStatus()
			m.state = StateTasks
		} else {
			m.form.State = huh.StateNormal
		}
	case huh.StateAborted:
		m.state = StateTasks
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDeleteHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.store.DeleteHabit(m.habitToDeleteID); err == nil {
				m.refreshHabits()
				m.updateValidationStatus()
			}
			m.habitToDeleteID = ""
			m.state = StateHabits
		case "n", "N", "esc", "q":
			m.habitToDeleteID = ""
			m.state = StateHabits
		}
	}
	return m, nil
}

func (m Model) updateConfirmDeleteTask(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.store.DeleteTask(m.taskToDeleteID); err == nil {
				m.refreshTasks()
				m.updateValidationStatus()
			}
			m.taskToDeleteID = ""
			m.state = StateTasks
		case "n", "N", "esc", "q":
			m.taskToDeleteID = ""
			m.state = StateTasks
		}
	}
	return m, nil
}
