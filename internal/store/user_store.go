package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/dharani18p/task-management-Web-App/internal/models"
)

// UserStore persists user records. The unique email constraint lives in the
// database, so duplicate registrations surface as ErrEmailExists here.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns its id. The password must already be
// hashed by the caller.
func (s *UserStore) Create(name, email, passwordHash string) (int, error) {
	var id int
	err := s.db.QueryRow(
		"INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return id, nil
}

func (s *UserStore) GetByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, name, email, password_hash, registration_date FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.RegistrationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *UserStore) GetByID(id int) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, name, email, password_hash, registration_date FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.RegistrationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return user, err
}
