package handlers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/internal/models"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

// taskResponse is the task shape on the wire. Optional fields are null when
// unset, not empty strings.
type taskResponse struct {
	TaskID      int     `json:"task_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	DueTime     *string `json:"due_time"`
	CreatedAt   string  `json:"created_at"`
}

func newTaskResponse(t models.Task) taskResponse {
	return taskResponse{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: nullableString(t.Description),
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     nullableString(t.DueDate),
		DueTime:     nullableString(t.DueTime),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// CreateTask inserts a task owned by the current user. Priority defaults to
// "medium" and status to "pending".
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	type TaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		Status      string `json:"status"`
		DueDate     string `json:"due_date"`
		DueTime     string `json:"due_time"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title required"})
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title required"})
	}

	taskID, err := h.tasks.Create(userID, store.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating task"})
	}

	h.cache.Delete(c.Context(), analyticsKey(userID))
	h.hub.Notify("task_created", taskID)
	logger.AuditLogger.Info("Task created", zap.Int("task_id", taskID), zap.Int("user_id", userID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":     "Task created",
		"task_id": taskID,
	})
}

// ListTasks returns one page of the user's tasks, optionally filtered by
// exact status and priority, newest first.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", store.DefaultPerPage)
	filter := store.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	tasks, pagination, err := h.tasks.List(userID, filter, page, perPage)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}

	items := []taskResponse{}
	for _, task := range tasks {
		items = append(items, newTaskResponse(task))
	}

	return c.JSON(fiber.Map{
		"tasks":      items,
		"pagination": pagination,
	})
}

// UpdateTask applies a partial update to an owned task. Ownership is checked
// before the body is even parsed, so a foreign task always fails with 403.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := h.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching task"})
	}
	if task.UserID != userID {
		logger.SecurityLogger.Warn("Update on foreign task",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized to update this task"})
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		DueDate     *string `json:"due_date"`
		DueTime     *string `json:"due_time"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request body cannot be empty"})
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}
	if patch.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request body cannot be empty"})
	}

	if err := h.tasks.Update(taskID, patch); err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating task"})
	}

	h.cache.Delete(c.Context(), analyticsKey(userID))
	h.hub.Notify("task_updated", taskID)
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{"msg": "Task updated successfully"})
}

// DeleteTask permanently removes an owned task.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := h.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching task"})
	}
	if task.UserID != userID {
		logger.SecurityLogger.Warn("Delete on foreign task",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.tasks.Delete(taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error deleting task"})
	}

	h.cache.Delete(c.Context(), analyticsKey(userID))
	h.hub.Notify("task_deleted", taskID)
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{"msg": "Task deleted successfully"})
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
