package constants

const (
	// DateFormat is the canonical calendar-day format used across
	// storage keys, streak math, and the heatmap.
	DateFormat = "2006-01-02"

	// ClockFormat is the HH:MM format used for reminder times.
	ClockFormat = "15:04"
)
