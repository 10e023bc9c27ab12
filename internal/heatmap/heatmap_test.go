package heatmap

import (
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/models"
)

// Saturday, Dec 27 2025. With a Saturday "today" the aligned grid ends
// exactly on today, which keeps the last-cell assertions meaningful.
var now = time.Date(2025, 12, 27, 9, 15, 0, 0, time.UTC)

func completionOn(daysAgo int) models.Completion {
	return models.Completion{
		ID:          "c",
		HabitID:     "habit-1",
		CompletedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestDailyCounts_Multiplicity(t *testing.T) {
	completions := []models.Completion{
		completionOn(0),
		completionOn(0),
		completionOn(3),
	}

	counts := DailyCounts(completions, 365, now)

	today := now.Format("2006-01-02")
	threeDaysAgo := now.AddDate(0, 0, -3).Format("2006-01-02")

	if counts[today] != 2 {
		t.Errorf("expected count 2 for %s, got %d", today, counts[today])
	}
	if counts[threeDaysAgo] != 1 {
		t.Errorf("expected count 1 for %s, got %d", threeDaysAgo, counts[threeDaysAgo])
	}
	if len(counts) != 2 {
		t.Errorf("expected 2 distinct days, got %d", len(counts))
	}
}

func TestDailyCounts_WindowBoundary(t *testing.T) {
	// A completion exactly windowDays ago is kept; one day older is
	// dropped (strict before-cutoff exclusion).
	completions := []models.Completion{
		completionOn(30),
		completionOn(31),
	}

	counts := DailyCounts(completions, 30, now)

	kept := now.AddDate(0, 0, -30).Format("2006-01-02")
	dropped := now.AddDate(0, 0, -31).Format("2006-01-02")

	if counts[kept] != 1 {
		t.Errorf("expected completion exactly %d days ago to be included", 30)
	}
	if _, ok := counts[dropped]; ok {
		t.Errorf("expected completion %d days ago to be excluded", 31)
	}
}

func TestIntensityLevel(t *testing.T) {
	cases := []struct {
		count int
		level int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
		{12, 4},
	}

	for _, c := range cases {
		if got := IntensityLevel(c.count); got != c.level {
			t.Errorf("IntensityLevel(%d) = %d, want %d", c.count, got, c.level)
		}
	}
}

func TestBuildWeekGrid_Alignment(t *testing.T) {
	const totalDays = 140 // 20 weeks

	grid := BuildWeekGrid(map[string]int{}, totalDays, now)

	firstDay := now.AddDate(0, 0, -(totalDays - 1))
	startOffset := int(firstDay.Weekday())
	wantWeeks := (totalDays + startOffset + 6) / 7

	if len(grid.Weeks) != wantWeeks {
		t.Fatalf("expected %d week columns, got %d", wantWeeks, len(grid.Weeks))
	}

	for i, week := range grid.Weeks {
		if len(week) != 7 {
			t.Fatalf("week %d has %d cells, want 7", i, len(week))
		}
		if week[0].Date.Weekday() != time.Sunday {
			t.Errorf("week %d does not start on Sunday", i)
		}
	}

	lastWeek := grid.Weeks[len(grid.Weeks)-1]
	lastCell := lastWeek[len(lastWeek)-1]
	if lastCell.Day != now.Format("2006-01-02") {
		t.Errorf("expected last cell to be today, got %s", lastCell.Day)
	}
}

func TestBuildWeekGrid_CountsAndLevels(t *testing.T) {
	today := now.Format("2006-01-02")
	counts := map[string]int{today: 7}

	grid := BuildWeekGrid(counts, 28, now)

	lastWeek := grid.Weeks[len(grid.Weeks)-1]
	cell := lastWeek[len(lastWeek)-1]

	if cell.Count != 7 {
		t.Errorf("expected count 7 on today's cell, got %d", cell.Count)
	}
	if cell.Level != 4 {
		t.Errorf("expected intensity level 4, got %d", cell.Level)
	}
}

func TestBuildWeekGrid_MonthHeaders(t *testing.T) {
	grid := BuildWeekGrid(map[string]int{}, 140, now)

	if len(grid.Headers) == 0 {
		t.Fatal("expected at least one month header")
	}
	if grid.Headers[0].WeekIndex != 0 {
		t.Errorf("expected first header on week 0, got %d", grid.Headers[0].WeekIndex)
	}

	// Header labels must change between consecutive headers and their
	// week indexes must be strictly increasing.
	for i := 1; i < len(grid.Headers); i++ {
		if grid.Headers[i].Label == grid.Headers[i-1].Label {
			t.Errorf("duplicate consecutive month label %q", grid.Headers[i].Label)
		}
		if grid.Headers[i].WeekIndex <= grid.Headers[i-1].WeekIndex {
			t.Errorf("headers out of order at index %d", i)
		}
	}

	// 140 days ending Dec 26 2025 spans Aug..Dec: expect 5-6 headers
	// depending on Sunday alignment.
	if len(grid.Headers) < 4 || len(grid.Headers) > 6 {
		t.Errorf("unexpected number of month headers: %d", len(grid.Headers))
	}
}
