package api

import (
	"time"

	"github.com/taskmasterhq/taskmaster/internal/models"
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
}

// UpdateTaskRequest is the HTTP request for a partial update. Absent (or
// null) fields leave the stored value untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Category    *string    `json:"category"`
	Status      *string    `json:"status"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDatePtr(),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// StatusCheckRequest is the HTTP request for recording a status check.
type StatusCheckRequest struct {
	ClientName string `json:"client_name"`
}

// StatusCheckResponse is the wire representation of a status check.
type StatusCheckResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func newStatusCheckResponse(c *models.StatusCheck) StatusCheckResponse {
	return StatusCheckResponse{
		ID:         c.ID,
		ClientName: c.ClientName,
		Timestamp:  c.Timestamp,
	}
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
