package repository

import (
	"context"
	"database/sql"
	"errors"

	"studenthub/internal/models"
)

// ErrDuplicateEmail reports a write that violated the unique email index.
var ErrDuplicateEmail = errors.New("email already taken")

// Users is the credential store. ByID never loads the password hash;
// only ByEmail does, for login verification.
type Users interface {
	Create(u *models.User) error
	ByEmail(email string) (*models.User, error)
	ByID(id string) (*models.User, error)
	UpdateProfile(id, name, email string) error
	CreateAdminIfAbsent(u *models.User) (bool, error)
}

// Students persists enrollment records joined with user identity.
type Students interface {
	Create(ctx context.Context, s *models.Student) error
	ByID(ctx context.Context, id string) (*models.StudentProfile, error)
	ByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	List(ctx context.Context, offset, limit int) ([]models.StudentProfile, error)
	Count(ctx context.Context) (int, error)
	UpdateCourse(ctx context.Context, id, course string) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users    Users
	Students Students
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Students: NewStudentRepository(db),
	}
}
