package storage

import "github.com/tally-cli/tally/internal/constants"

type Settings struct {
	StreakLookbackDays int  `json:"streak_lookback_days"`
	HeatmapWindowDays  int  `json:"heatmap_window_days"`
	RemindersEnabled   bool `json:"reminders_enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		StreakLookbackDays: constants.StreakLookbackDays,
		HeatmapWindowDays:  constants.HeatmapWindowDays,
		RemindersEnabled:   true,
	}
}
