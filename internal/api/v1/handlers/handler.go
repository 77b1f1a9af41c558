// Package handlers maps HTTP requests onto the stores. Handlers validate
// request shape, delegate, and assemble responses; business rules live in the
// stores.
package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dharani18p/task-management-Web-App/internal/cache"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	ws "github.com/dharani18p/task-management-Web-App/internal/websocket"
)

// Handler carries every dependency the routes need. It replaces package
// globals so tests can build an app against their own database and cache.
type Handler struct {
	users    *store.UserStore
	tasks    *store.TaskStore
	cache    *cache.Cache
	hub      *ws.Hub
	validate *validator.Validate
	secret   []byte
}

func New(users *store.UserStore, tasks *store.TaskStore, c *cache.Cache, hub *ws.Hub, secret []byte) *Handler {
	return &Handler{
		users:    users,
		tasks:    tasks,
		cache:    c,
		hub:      hub,
		validate: validator.New(),
		secret:   secret,
	}
}

func analyticsKey(userID int) string {
	return fmt.Sprintf("analytics:%d", userID)
}
