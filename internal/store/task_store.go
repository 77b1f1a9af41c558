package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dharani18p/task-management-Web-App/internal/models"
)

const DefaultPerPage = 5

// TaskStore persists task records and runs the filtered, paginated list
// queries and the per-status aggregation.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// NewTask carries the fields accepted at creation. Empty optional fields are
// stored as NULL; empty priority and status fall back to their defaults.
type NewTask struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
	DueTime     string
}

// TaskPatch is a partial update. Nil fields keep the stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *string
	DueTime     *string
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && p.DueDate == nil && p.DueTime == nil
}

// TaskFilter holds the exact-match list filters. Empty fields are not applied.
type TaskFilter struct {
	Status   string
	Priority string
}

type Pagination struct {
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

type Analytics struct {
	TotalTasks    int          `json:"total_tasks"`
	TasksByStatus StatusCounts `json:"tasks_by_status"`
}

type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

func (s *TaskStore) Create(userID int, t NewTask) (int, error) {
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Status == "" {
		t.Status = "pending"
	}
	var id int
	err := s.db.QueryRow(
		`INSERT INTO tasks (user_id, title, description, priority, status, due_date, due_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, t.Title, nullIfEmpty(t.Description), t.Priority, t.Status,
		nullIfEmpty(t.DueDate), nullIfEmpty(t.DueTime),
	).Scan(&id)
	return id, err
}

func (s *TaskStore) GetByID(id int) (models.Task, error) {
	var task models.Task
	err := s.db.QueryRow(
		`SELECT id, user_id, title, description, priority, status, due_date, due_time, created_at, updated_at
		 FROM tasks WHERE id = $1`,
		id,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority,
		&task.Status, &task.DueDate, &task.DueTime, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

// List returns one page of the user's tasks, newest first. Out-of-range pages
// yield an empty slice, not an error.
func (s *TaskStore) List(userID int, filter TaskFilter, page, perPage int) ([]models.Task, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	where := "WHERE user_id = $1"
	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tasks "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(
		`SELECT id, user_id, title, description, priority, status, due_date, due_time, created_at, updated_at
		 FROM tasks %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority,
			&task.Status, &task.DueDate, &task.DueTime, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, Pagination{}, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}
	return tasks, paginate(total, page, perPage), nil
}

func (s *TaskStore) Update(id int, patch TaskPatch) error {
	_, err := s.db.Exec(
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     priority = COALESCE($3, priority),
		     status = COALESCE($4, status),
		     due_date = COALESCE($5, due_date),
		     due_time = COALESCE($6, due_time),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		patch.Title, patch.Description, patch.Priority, patch.Status,
		patch.DueDate, patch.DueTime, id,
	)
	return err
}

func (s *TaskStore) Delete(id int) error {
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = $1", id)
	return err
}

// Analytics counts the user's tasks in total and per fixed status bucket.
// Statuses outside the three buckets only show up in the total.
func (s *TaskStore) Analytics(userID int) (Analytics, error) {
	rows, err := s.db.Query(
		"SELECT status, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY status",
		userID,
	)
	if err != nil {
		return Analytics{}, err
	}
	defer rows.Close()

	var result Analytics
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Analytics{}, err
		}
		result.TotalTasks += count
		switch status {
		case "pending":
			result.TasksByStatus.Pending = count
		case "in_progress":
			result.TasksByStatus.InProgress = count
		case "completed":
			result.TasksByStatus.Completed = count
		}
	}
	return result, rows.Err()
}

func paginate(total, page, perPage int) Pagination {
	totalPages := (total + perPage - 1) / perPage
	return Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
