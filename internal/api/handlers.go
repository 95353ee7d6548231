package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taskmasterhq/taskmaster/internal/service"
)

// Handler translates HTTP requests into service calls and service errors
// into status codes.
type Handler struct {
	tasks  *service.TaskService
	status *service.StatusService
}

func NewHandler(tasks *service.TaskService, status *service.StatusService) *Handler {
	return &Handler{tasks: tasks, status: status}
}

// root handles GET /api/.
func (h *Handler) root(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "TaskMaster API"})
}

// createTask handles POST /api/tasks.
func (h *Handler) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	task, err := h.tasks.Create(c.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(newTaskResponse(task))
}

// listTasks handles GET /api/tasks.
func (h *Handler) listTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(c.Context(), service.ListTasksInput{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
	})
	if err != nil {
		return h.renderError(c, err)
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return c.JSON(out)
}

// getTask handles GET /api/tasks/:id.
func (h *Handler) getTask(c *fiber.Ctx) error {
	task, err := h.tasks.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(newTaskResponse(task))
}

// updateTask handles PUT /api/tasks/:id.
func (h *Handler) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	task, err := h.tasks.Update(c.Context(), c.Params("id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(newTaskResponse(task))
}

// deleteTask handles DELETE /api/tasks/:id.
func (h *Handler) deleteTask(c *fiber.Ctx) error {
	if err := h.tasks.Delete(c.Context(), c.Params("id")); err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Task deleted successfully"})
}

// createStatusCheck handles POST /api/status.
func (h *Handler) createStatusCheck(c *fiber.Ctx) error {
	var req StatusCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	check, err := h.status.Record(c.Context(), req.ClientName)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(newStatusCheckResponse(check))
}

// listStatusChecks handles GET /api/status.
func (h *Handler) listStatusChecks(c *fiber.Ctx) error {
	checks, err := h.status.List(c.Context())
	if err != nil {
		return h.renderError(c, err)
	}

	out := make([]StatusCheckResponse, 0, len(checks))
	for _, check := range checks {
		out = append(out, newStatusCheckResponse(check))
	}
	return c.JSON(out)
}

// renderError maps the service error taxonomy onto HTTP status codes:
// validation → 422, not found → 404, anything else → 500.
func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: ve.Error(),
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "storage_error",
			Message: "Storage unavailable",
		})
	}
}
