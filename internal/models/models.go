package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID               int       `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	RegistrationDate time.Time `json:"registration_date"`
}

type Task struct {
	ID          int            `json:"task_id"`
	UserID      int            `json:"user_id"`
	Title       string         `json:"title"`
	Description sql.NullString `json:"description"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	DueDate     sql.NullString `json:"due_date"`
	DueTime     sql.NullString `json:"due_time"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
