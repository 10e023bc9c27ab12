package constants

const (
	// Streak milestone thresholds. Purely presentational: the stats and
	// TUI views decorate streaks that have crossed them.
	StreakMilestoneSmall  = 7
	StreakMilestoneMedium = 30
	StreakMilestoneLarge  = 100

	// StreakLookbackDays bounds the backward walk of the current-streak
	// calculation. Streaks longer than this are undercounted.
	StreakLookbackDays = 365

	// HeatmapWindowDays is the default trailing window for the daily
	// completion aggregate.
	HeatmapWindowDays = 365

	// HeatmapWeeks is the number of week columns the heatmap views show
	// by default (~5 months).
	HeatmapWeeks = 20
)
