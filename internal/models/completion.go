package models

import "time"

// Completion records that a habit was completed at a point in time.
// The streak engine interprets CompletedAt at day granularity in local
// time; the heatmap counts multiple completions on the same day.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}
