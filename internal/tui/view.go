package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateHeatmap:
		content = docStyle.Render(m.heatmapView)
	case StateAddHabit, StateAddTask:
		content = m.form.View()
	case StateConfirmDeleteHabit:
		content = m.viewConfirmDelete("Are you sure you want to delete this habit?")
	case StateConfirmDeleteTask:
		content = m.viewConfirmDelete("Are you sure you want to delete this task?")
	}

	parts := []string{m.viewTabs(), content}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(" "+m.validationWarning))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Tasks", "Heatmap"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete(prompt string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
