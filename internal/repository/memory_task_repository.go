package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/taskmasterhq/taskmaster/internal/models"
)

// MemoryTaskRepository keeps tasks in process memory. It mirrors the SQL
// repository's filter and sort semantics and backs tests and local runs
// that have no database.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string // insertion order, the sort tie-break
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]models.Task),
	}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *MemoryTaskRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (r *MemoryTaskRepository) List(_ context.Context, filter ListFilter) ([]*models.Task, error) {
	r.mu.RLock()
	matched := make([]models.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.Category != nil && task.Category != *filter.Category {
			continue
		}
		matched = append(matched, task)
	}
	r.mu.RUnlock()

	sortTasks(matched, filter.SortBy, filter.SortOrder)

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*models.Task, len(matched))
	for i := range matched {
		out[i] = &matched[i]
	}
	return out, nil
}

func sortTasks(tasks []models.Task, sortBy, sortOrder string) {
	asc := sortOrder == "asc"

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch sortBy {
		case "title":
			if asc {
				return a.Title < b.Title
			}
			return a.Title > b.Title
		case "due_date":
			// Missing due dates sort after present ones in either direction.
			if !a.DueDate.Valid || !b.DueDate.Valid {
				return a.DueDate.Valid && !b.DueDate.Valid
			}
			if asc {
				return a.DueDate.Time.Before(b.DueDate.Time)
			}
			return a.DueDate.Time.After(b.DueDate.Time)
		case "priority":
			if asc {
				return priorityRank(a.Priority) < priorityRank(b.Priority)
			}
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		case "updated_at":
			if asc {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
			return a.UpdatedAt.After(b.UpdatedAt)
		default:
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

func priorityRank(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	default:
		return 1
	}
}

func (r *MemoryTaskRepository) Update(_ context.Context, id string, update *TaskUpdate) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		task.DueDate.Time = *update.DueDate
		task.DueDate.Valid = true
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	task.UpdatedAt = update.UpdatedAt

	r.tasks[id] = task
	return &task, nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryStatusCheckRepository keeps status checks in process memory.
type MemoryStatusCheckRepository struct {
	mu     sync.RWMutex
	checks []models.StatusCheck
}

func NewMemoryStatusCheckRepository() *MemoryStatusCheckRepository {
	return &MemoryStatusCheckRepository{}
}

func (r *MemoryStatusCheckRepository) Create(_ context.Context, check *models.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, *check)
	return nil
}

func (r *MemoryStatusCheckRepository) List(_ context.Context) ([]*models.StatusCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.StatusCheck, 0, len(r.checks))
	for i := len(r.checks) - 1; i >= 0; i-- {
		check := r.checks[i]
		out = append(out, &check)
	}
	return out, nil
}
