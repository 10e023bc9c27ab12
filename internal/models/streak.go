package models

// StreakResult is the computed streak state for a single habit. It is
// derived on demand from the habit's completions and never persisted.
type StreakResult struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // YYYY-MM-DD, empty if no completions
}
