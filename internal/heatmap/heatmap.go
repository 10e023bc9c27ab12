package heatmap

import (
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

// Cell is a single day in the heatmap grid.
type Cell struct {
	Date  time.Time
	Day   string // YYYY-MM-DD
	Count int
	Level int // 0-4
}

// MonthHeader marks the first week column whose Sunday falls in a new
// calendar month.
type MonthHeader struct {
	Label     string
	WeekIndex int
}

// Grid is a calendar-aligned heatmap: Weeks is a sequence of week
// columns, each exactly 7 cells (Sunday..Saturday), ending on today.
type Grid struct {
	Weeks   [][]Cell
	Headers []MonthHeader
}

// DailyCounts groups completions by local calendar date, counting
// multiplicity, restricted to the trailing windowDays before now.
// A completion exactly windowDays ago is included; anything strictly
// older is dropped. windowDays <= 0 falls back to the default window.
func DailyCounts(completions []models.Completion, windowDays int, now time.Time) map[string]int {
	if windowDays <= 0 {
		windowDays = constants.HeatmapWindowDays
	}

	cutoff := now.AddDate(0, 0, -windowDays)
	counts := make(map[string]int)

	for _, c := range completions {
		t := c.CompletedAt.In(now.Location())
		if t.Before(cutoff) {
			continue
		}
		counts[t.Format(constants.DateFormat)]++
	}

	return counts
}

// IntensityLevel buckets a day's completion count into the fixed 0-4
// scale used for heatmap coloring.
func IntensityLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

// BuildWeekGrid lays out daily counts as week columns covering the
// totalDays ending on today. The first column is padded back to the
// Sunday on or before the window start, so every column holds a full
// Sunday..Saturday run and the last cell is today.
func BuildWeekGrid(counts map[string]int, totalDays int, now time.Time) Grid {
	if totalDays <= 0 {
		totalDays = constants.HeatmapWeeks * 7
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	firstDay := today.AddDate(0, 0, -(totalDays - 1))

	startOffset := int(firstDay.Weekday())
	totalCells := totalDays + startOffset
	numWeeks := (totalCells + 6) / 7

	weeks := make([][]Cell, 0, numWeeks)
	for w := 0; w < numWeeks; w++ {
		week := make([]Cell, 0, 7)
		for d := 0; d < 7; d++ {
			offset := w*7 + d
			date := today.AddDate(0, 0, -(totalCells - 1 - offset))
			day := date.Format(constants.DateFormat)
			count := counts[day]
			week = append(week, Cell{
				Date:  date,
				Day:   day,
				Count: count,
				Level: IntensityLevel(count),
			})
		}
		weeks = append(weeks, week)
	}

	var headers []MonthHeader
	lastMonth := time.Month(0)
	for w, week := range weeks {
		// The column's Sunday decides which month it belongs to.
		month := week[0].Date.Month()
		if month != lastMonth {
			headers = append(headers, MonthHeader{
				Label:     month.String()[:3],
				WeekIndex: w,
			})
			lastMonth = month
		}
	}

	return Grid{Weeks: weeks, Headers: headers}
}
