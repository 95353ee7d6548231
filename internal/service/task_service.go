package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskmasterhq/taskmaster/internal/models"
	"github.com/taskmasterhq/taskmaster/internal/repository"
)

// CreateTaskInput carries the fields a client may set on creation.
// Priority and Category default when empty; Status is always "pending".
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Category    string
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Category    *string
	Status      *string
}

// ListTasksInput carries raw filter and sort parameters from the API.
type ListTasksInput struct {
	Status   string
	Priority string
	Category string
	SortBy   string
	Order    string
}

// TaskService enforces the Task data model and mediates all access to the
// task store. It is the only writer and the authority for ids and timestamps.
type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create validates input, assigns id and timestamps, and persists the task.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		p, err := models.ParsePriority(input.Priority)
		if err != nil {
			return nil, &ValidationError{Field: "priority", Reason: err.Error()}
		}
		priority = p
	}

	category := models.CategoryPersonal
	if input.Category != "" {
		c, err := models.ParseCategory(input.Category)
		if err != nil {
			return nil, &ValidationError{Field: "category", Reason: err.Error()}
		}
		category = c
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		Category:    category,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DueDate != nil {
		task.DueDate.Time = input.DueDate.UTC()
		task.DueDate.Valid = true
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// List returns every task matching all supplied filters, ordered per the
// sort parameters. Unknown sort keys fall back to created_at; direction is
// descending unless an explicit non-"desc" order is supplied.
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]*models.Task, error) {
	filter := repository.ListFilter{
		SortBy:    normalizeSortBy(input.SortBy),
		SortOrder: normalizeOrder(input.Order),
	}

	if input.Status != "" {
		st, err := models.ParseStatus(input.Status)
		if err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		filter.Status = &st
	}
	if input.Priority != "" {
		p, err := models.ParsePriority(input.Priority)
		if err != nil {
			return nil, &ValidationError{Field: "priority", Reason: err.Error()}
		}
		filter.Priority = &p
	}
	if input.Category != "" {
		c, err := models.ParseCategory(input.Category)
		if err != nil {
			return nil, &ValidationError{Field: "category", Reason: err.Error()}
		}
		filter.Category = &c
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the supplied fields into the stored task and refreshes
// updated_at. Unsupplied fields are preserved.
func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	update := &repository.TaskUpdate{UpdatedAt: time.Now().UTC()}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		update.Title = &title
	}
	if input.Description != nil {
		update.Description = input.Description
	}
	if input.DueDate != nil {
		due := input.DueDate.UTC()
		update.DueDate = &due
	}
	if input.Priority != nil {
		p, err := models.ParsePriority(*input.Priority)
		if err != nil {
			return nil, &ValidationError{Field: "priority", Reason: err.Error()}
		}
		update.Priority = &p
	}
	if input.Category != nil {
		c, err := models.ParseCategory(*input.Category)
		if err != nil {
			return nil, &ValidationError{Field: "category", Reason: err.Error()}
		}
		update.Category = &c
	}
	if input.Status != nil {
		st, err := models.ParseStatus(*input.Status)
		if err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		update.Status = &st
	}

	task, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes the task permanently.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func normalizeSortBy(sortBy string) string {
	switch sortBy {
	case "created_at", "updated_at", "due_date", "title", "priority":
		return sortBy
	default:
		return "created_at"
	}
}

func normalizeOrder(order string) string {
	if order == "" || order == "desc" {
		return "desc"
	}
	return "asc"
}
