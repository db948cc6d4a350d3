package service

import (
	"context"

	"studenthub/internal/models"
	"studenthub/internal/repository"
)

type Authorization interface {
	SignUp(name, email, password string) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	ParseToken(accessToken string) (string, error)
	UserByID(id string) (*models.User, error)
	EnsureAdmin() (bool, error)
}

// CreateStudentInput carries the admin-side enrollment payload. Password
// is ignored when the email already belongs to an account.
type CreateStudentInput struct {
	Name     string
	Email    string
	Password string
	Course   string
}

// UpdateStudentInput carries a partial update; empty fields are left as-is.
type UpdateStudentInput struct {
	Name   string
	Email  string
	Course string
}

type Students interface {
	List(ctx context.Context, page, limit int) ([]models.StudentProfile, models.Pagination, error)
	ByID(ctx context.Context, id string) (*models.StudentProfile, error)
	Create(ctx context.Context, in CreateStudentInput) (*models.StudentProfile, error)
	Update(ctx context.Context, id string, actor *models.User, in UpdateStudentInput) (*models.StudentProfile, error)
	Delete(ctx context.Context, id string) error
	ProfileByUser(ctx context.Context, userID string) (*models.StudentProfile, error)
	Count(ctx context.Context) (int, error)
}

// Root Service aggregates all sub-services.
type Service struct {
	Authorization
	Students
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Students:      NewStudentService(repos.Students, repos.Users),
	}
}
