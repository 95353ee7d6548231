package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Priority level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Category a task belongs to.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryOther    Category = "other"
)

// Status of a task. The two values transition freely in both directions.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParsePriority converts a wire value into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

// ParseCategory converts a wire value into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryWork, CategoryPersonal, CategoryStudy, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

type Task struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	DueDate     sql.NullTime `db:"due_date"`
	Priority    Priority     `db:"priority"`
	Category    Category     `db:"category"`
	Status      Status       `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// DueDatePtr returns the due date as a pointer, nil when unset.
func (t *Task) DueDatePtr() *time.Time {
	if !t.DueDate.Valid {
		return nil
	}
	d := t.DueDate.Time
	return &d
}

// StatusCheck is a client liveness ping recorded for diagnostics.
type StatusCheck struct {
	ID         string    `db:"id"`
	ClientName string    `db:"client_name"`
	Timestamp  time.Time `db:"timestamp"`
}
