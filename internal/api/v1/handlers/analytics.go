package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

// Analytics reports the user's task totals per status bucket. Responses are
// served from the Redis cache when present; every task mutation invalidates
// the entry.
func (h *Handler) Analytics(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)
	key := analyticsKey(userID)

	if cached, ok := h.cache.Get(c.Context(), key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	result, err := h.tasks.Analytics(userID)
	if err != nil {
		logger.ErrorLogger.Error("Error computing analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error computing analytics"})
	}

	if body, err := json.Marshal(result); err == nil {
		h.cache.Set(c.Context(), key, body)
	}

	return c.JSON(result)
}
