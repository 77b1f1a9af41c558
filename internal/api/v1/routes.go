package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dharani18p/task-management-Web-App/internal/api/v1/handlers"
	"github.com/dharani18p/task-management-Web-App/internal/middleware"
)

// RegisterRoutes wires the API. Task mutations demand the session cookie;
// read-only routes also accept a bearer header.
func RegisterRoutes(app *fiber.App, h *handlers.Handler, secret []byte) {
	api := app.Group("/api")

	// Auth
	api.Post("/users/register", h.Register)
	api.Post("/users/login", h.Login)
	api.Get("/users/me", middleware.TokenAuth(secret), h.Me)

	// Tasks
	tasks := api.Group("/tasks")
	tasks.Post("/", middleware.CookieAuth(secret), h.CreateTask)
	tasks.Get("/", middleware.TokenAuth(secret), h.ListTasks)
	tasks.Put("/:id", middleware.CookieAuth(secret), h.UpdateTask)
	tasks.Delete("/:id", middleware.CookieAuth(secret), h.DeleteTask)

	// Analytics
	api.Get("/analytics", middleware.TokenAuth(secret), h.Analytics)
}
