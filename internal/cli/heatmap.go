package cli

import (
	"fmt"
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/heatmap"
)

type HeatmapCmd struct {
	Weeks int `short:"n" help:"Number of weeks to show." default:"20"`
}

func (c *HeatmapCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}

	weeks := c.Weeks
	if weeks <= 0 {
		weeks = constants.HeatmapWeeks
	}
	totalDays := weeks * 7

	now := time.Now()
	counts := heatmap.DailyCounts(completions, totalDays, now)
	grid := heatmap.BuildWeekGrid(counts, totalDays, now)

	fmt.Println(heatmap.Render(grid, now))
	return nil
}
