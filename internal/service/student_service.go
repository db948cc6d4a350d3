package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"studenthub/internal/models"
	"studenthub/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Domain errors for student flows.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student already exists")
	ErrAdminUser       = errors.New("cannot create student record for admin user")
	ErrForbidden       = errors.New("you can only update your own profile")
	ErrCourseRequired  = errors.New("course is required")
)

// StudentService implements enrollment CRUD on top of the user and
// student stores.
type StudentService struct {
	students repository.Students
	users    repository.Users
}

func NewStudentService(students repository.Students, users repository.Users) *StudentService {
	return &StudentService{students: students, users: users}
}

// normalizePage clamps paging parameters to sane bounds.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// List returns one page of students plus pagination metadata.
func (s *StudentService) List(ctx context.Context, page, limit int) ([]models.StudentProfile, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.students.Count(ctx)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	rows, err := s.students.List(ctx, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := (total + limit - 1) / limit
	p := models.Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalStudents: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		Limit:         limit,
	}
	return rows, p, nil
}

// ByID fetches a single student profile.
func (s *StudentService) ByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	st, err := s.students.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	return st, nil
}

// Create enrolls a student. When the email already belongs to a non-admin
// account the existing account is reused; an admin email or an already
// enrolled user is rejected.
func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*models.StudentProfile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Course = strings.TrimSpace(in.Course)
	if in.Course == "" {
		return nil, ErrCourseRequired
	}
	if in.Name == "" || in.Email == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.ByEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if user != nil {
		existing, err := s.students.ByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrStudentExists
		}
		// Never demote an admin account into a student record.
		if user.Role == models.RoleAdmin {
			return nil, ErrAdminUser
		}
	} else {
		if len(in.Password) < minPasswordLen {
			return nil, ErrPasswordTooShort
		}
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user = &models.User{
			ID:           uuid.NewString(),
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         models.RoleStudent,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.users.Create(user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, ErrDuplicateEmail
			}
			return nil, err
		}
	}

	st := &models.Student{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Course:     in.Course,
		EnrolledAt: time.Now().UTC(),
	}
	if err := s.students.Create(ctx, st); err != nil {
		return nil, err
	}
	return s.ByID(ctx, st.ID)
}

// Update applies a partial edit. Admins may edit anyone; a student may
// only edit their own record.
func (s *StudentService) Update(ctx context.Context, id string, actor *models.User, in UpdateStudentInput) (*models.StudentProfile, error) {
	st, err := s.students.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	if actor.Role != models.RoleAdmin && st.UserID != actor.ID {
		return nil, ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Course = strings.TrimSpace(in.Course)

	if in.Name != "" || in.Email != "" {
		name := st.Name
		email := st.Email
		if in.Name != "" {
			name = in.Name
		}
		if in.Email != "" {
			email = in.Email
		}
		if err := s.users.UpdateProfile(st.UserID, name, email); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, ErrDuplicateEmail
			}
			return nil, err
		}
	}

	if in.Course != "" {
		if err := s.students.UpdateCourse(ctx, id, in.Course); err != nil {
			return nil, err
		}
	}

	return s.ByID(ctx, id)
}

// Delete removes the enrollment record. The user account is kept: it may
// still be needed for login and auditing.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	st, err := s.students.ByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrStudentNotFound
	}
	return s.students.Delete(ctx, id)
}

// ProfileByUser fetches the student record owned by userID.
func (s *StudentService) ProfileByUser(ctx context.Context, userID string) (*models.StudentProfile, error) {
	st, err := s.students.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	return st, nil
}

// Count returns the total number of enrolled students.
func (s *StudentService) Count(ctx context.Context) (int, error) {
	return s.students.Count(ctx)
}
