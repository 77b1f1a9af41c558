package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

// Me returns the identity behind the current token.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	user, err := h.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching user"})
	}

	return c.JSON(fiber.Map{
		"user_id":           user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"registration_date": user.RegistrationDate.Format(time.RFC3339),
	})
}
