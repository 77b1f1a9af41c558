package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/internal/auth"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

// CookieName is the session cookie set on login.
const CookieName = "access_token"

// UserIDKey is the fiber locals key holding the authenticated user id.
const UserIDKey = "userID"

// CookieAuth only accepts the session cookie. Task mutation routes use it so
// that a stolen bearer token alone cannot modify data.
func CookieAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return requireToken(c, c.Cookies(CookieName), secret)
	}
}

// TokenAuth accepts a bearer Authorization header and falls back to the
// session cookie. Read-only routes use it.
func TokenAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.SecurityLogger.Warn("Malformed Authorization header", zap.String("url", c.OriginalURL()))
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token format"})
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Cookies(CookieName)
		}
		return requireToken(c, tokenString, secret)
	}
}

func requireToken(c *fiber.Ctx, tokenString string, secret []byte) error {
	if tokenString == "" {
		logger.SecurityLogger.Warn("Missing token", zap.String("url", c.OriginalURL()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authentication token"})
	}
	// Expired and forged tokens get the same response on purpose.
	userID, err := auth.ParseToken(tokenString, secret)
	if err != nil {
		logger.SecurityLogger.Warn("Token rejected", zap.String("url", c.OriginalURL()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	c.Locals(UserIDKey, userID)
	return c.Next()
}
