package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/internal/auth"
	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

// Register creates a new user with a bcrypt-hashed password.
func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating user"})
	}

	userID, err := h.users.Create(req.Name, req.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", req.Email))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating user"})
	}

	logger.AuditLogger.Info("User registered", zap.Int("user_id", userID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":     "User registered successfully",
		"user_id": userID,
	})
}

// Login verifies credentials and sets the session cookie. Unknown email and
// wrong password are reported separately (404 vs 401); that distinction is
// part of the API contract.
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error logging in"})
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logger.SecurityLogger.Warn("Invalid password", zap.Int("user_id", user.ID))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := auth.GenerateToken(user.ID, h.secret, auth.TokenTTL)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error logging in"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Expires:  time.Now().Add(auth.TokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"msg":     "Login successful",
		"user_id": user.ID,
	})
}
