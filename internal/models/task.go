package models

import "time"

// Task is a one-time task, as opposed to a recurring Habit.
type Task struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	DueDate   string     `json:"due_date,omitempty"` // YYYY-MM-DD format
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
