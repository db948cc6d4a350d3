package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studenthub/internal/models"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

var _ Students = (*StudentRepository)(nil)

const (
	insertStudentSQL = `INSERT INTO students (id, user_id, course, enrolled_at) VALUES (?, ?, ?, ?)`

	selectStudentSQL = `
		SELECT s.id, s.user_id, s.course, s.enrolled_at, u.name, u.email
		FROM students s
		JOIN users u ON u.id = s.user_id
	`

	selectStudentByIDSQL     = selectStudentSQL + ` WHERE s.id = ?`
	selectStudentByUserIDSQL = selectStudentSQL + ` WHERE s.user_id = ?`
	listStudentsSQL          = selectStudentSQL + ` ORDER BY s.enrolled_at, s.id LIMIT ? OFFSET ?`

	countStudentsSQL = `SELECT COUNT(*) FROM students`
	updateCourseSQL  = `UPDATE students SET course = ? WHERE id = ?`
	deleteStudentSQL = `DELETE FROM students WHERE id = ?`
)

func scanProfile(row *sql.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Course, &p.EnrolledAt, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new enrollment record. One student row per user.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	_, err := r.db.ExecContext(ctx, insertStudentSQL,
		s.ID, s.UserID, s.Course, s.EnrolledAt.UTC())
	if err != nil {
		return fmt.Errorf("insert student for user %q: %w", s.UserID, err)
	}
	return nil
}

// ByID fetches a student with the owner's name/email. Returns (nil, nil)
// if not found.
func (r *StudentRepository) ByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, selectStudentByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select student %q: %w", id, err)
	}
	return p, nil
}

// ByUserID fetches the student record owned by a user. Returns (nil, nil)
// if the user has no enrollment.
func (r *StudentRepository) ByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, selectStudentByUserIDSQL, userID))
	if err != nil {
		return nil, fmt.Errorf("select student by user %q: %w", userID, err)
	}
	return p, nil
}

// List returns one page of students in stable enrollment order.
func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]models.StudentProfile, error) {
	rows, err := r.db.QueryContext(ctx, listStudentsSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.StudentProfile
	for rows.Next() {
		var p models.StudentProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Course, &p.EnrolledAt, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return out, nil
}

// Count returns the total number of student records.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countStudentsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

// UpdateCourse changes the course of an existing student.
func (r *StudentRepository) UpdateCourse(ctx context.Context, id, course string) error {
	_, err := r.db.ExecContext(ctx, updateCourseSQL, course, id)
	if err != nil {
		return fmt.Errorf("update student %q: %w", id, err)
	}
	return nil
}

// Delete removes the enrollment record only; the User account survives.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteStudentSQL, id)
	if err != nil {
		return fmt.Errorf("delete student %q: %w", id, err)
	}
	return nil
}
