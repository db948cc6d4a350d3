package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"studenthub/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectUserByEmailSQL = `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?`

	// Deliberately omits password_hash: this is the lookup used on every
	// authenticated request and the hash must not travel with it.
	selectUserByIDSQL = `SELECT id, name, email, role, created_at FROM users WHERE id = ?`

	updateUserProfileSQL = `UPDATE users SET name = ?, email = ? WHERE id = ?`

	// Single atomic statement: the row is inserted only when no admin
	// exists, so concurrent starters cannot both seed one.
	insertAdminIfAbsentSQL = `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')
	`
)

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user. Returns ErrDuplicateEmail when the email is taken.
func (r *UserRepository) Create(u *models.User) error {
	_, err := r.db.Exec(insertUserSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// ByEmail fetches a user by email, including the password hash for
// credential verification. Returns (nil, nil) if not found.
func (r *UserRepository) ByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByEmailSQL, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &u, nil
}

// ByID fetches a user by id with the password hash excluded.
// Returns (nil, nil) if not found.
func (r *UserRepository) ByID(id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByIDSQL, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", id, err)
	}
	return &u, nil
}

// UpdateProfile sets name and email. Returns ErrDuplicateEmail when the
// new email collides with another account.
func (r *UserRepository) UpdateProfile(id, name, email string) error {
	_, err := r.db.Exec(updateUserProfileSQL, name, email, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user %q: %w", id, err)
	}
	return nil
}

// CreateAdminIfAbsent inserts u only if no admin row exists yet.
// Reports whether a row was actually created; calling it again once an
// admin exists is a no-op and never touches the existing record.
func (r *UserRepository) CreateAdminIfAbsent(u *models.User) (bool, error) {
	res, err := r.db.Exec(insertAdminIfAbsentSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, string(models.RoleAdmin), u.CreatedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed admin rows affected: %w", err)
	}
	return n > 0, nil
}
