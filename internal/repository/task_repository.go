package repository

import (
	"context"
	"errors"
	"time"

	"github.com/taskmasterhq/taskmaster/internal/models"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("task not found")

// DefaultListLimit caps unbounded list queries.
const DefaultListLimit = 1000

// ListFilter narrows and orders a task listing. Nil filter fields match everything.
type ListFilter struct {
	Status   *models.Status
	Priority *models.Priority
	Category *models.Category

	// SortBy is one of created_at, updated_at, due_date, title, priority.
	// Anything else falls back to created_at.
	SortBy    string
	SortOrder string // "asc" or "desc"
	Limit     int
}

// TaskUpdate carries a partial update. Nil fields are left untouched.
// UpdatedAt is always applied and is set by the service.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Category    *models.Category
	Status      *models.Status
	UpdatedAt   time.Time
}

// TaskRepository is the persistence boundary for tasks. Implementations own
// their internal concurrency safety; each call is a single atomic operation.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Task, error)
	Update(ctx context.Context, id string, update *TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// StatusCheckRepository persists client liveness pings.
type StatusCheckRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	List(ctx context.Context) ([]*models.StatusCheck, error)
}
