package heatmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tally-cli/tally/internal/constants"
)

// Intensity palette, level 0-4 (empty to saturated green).
var intensityStyles = [5]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
}

var dayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// Render draws a week grid as rows of colored cells with month labels
// on top, GitHub contribution-graph style. Cells after today are left
// blank.
func Render(grid Grid, now time.Time) string {
	var b strings.Builder

	// Month label row
	labels := make([]byte, len(grid.Weeks)*2)
	for i := range labels {
		labels[i] = ' '
	}
	monthRow := string(labels)
	for _, header := range grid.Headers {
		col := header.WeekIndex * 2
		if col+len(header.Label) <= len(monthRow) {
			monthRow = monthRow[:col] + header.Label + monthRow[col+len(header.Label):]
		}
	}
	b.WriteString("     " + monthRow + "\n")

	today := now.Format(constants.DateFormat)
	for row := 0; row < 7; row++ {
		b.WriteString(fmt.Sprintf("%4s ", dayLabels[row]))
		for _, week := range grid.Weeks {
			cell := week[row]
			if cell.Day > today {
				b.WriteString("  ")
				continue
			}
			b.WriteString(intensityStyles[cell.Level].Render("■") + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n     Less ")
	for _, style := range intensityStyles {
		b.WriteString(style.Render("■") + " ")
	}
	b.WriteString("More")

	return b.String()
}
