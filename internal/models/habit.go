package models

import "time"

type RecurrenceType string

const (
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
	// RecurrenceCustom currently shares weekly semantics: the habit is
	// due only on the weekdays listed in RecurrenceDays.
	RecurrenceCustom RecurrenceType = "custom"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Emoji          string         `json:"emoji,omitempty"`
	RecurrenceType RecurrenceType `json:"recurrence_type"`
	RecurrenceDays []time.Weekday `json:"recurrence_days,omitempty"` // 0=Sunday..6=Saturday
	ReminderTime   string         `json:"reminder_time,omitempty"`   // HH:MM format
	Priority       Priority       `json:"priority"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	ArchivedAt     *time.Time     `json:"archived_at,omitempty"`
	DeletedAt      *time.Time     `json:"deleted_at,omitempty"`
}

// IsWeekdayScheduled reports whether wd is in the habit's recurrence
// day set. Only meaningful for weekly/custom recurrence.
func (h Habit) IsWeekdayScheduled(wd time.Weekday) bool {
	for _, d := range h.RecurrenceDays {
		if d == wd {
			return true
		}
	}
	return false
}
