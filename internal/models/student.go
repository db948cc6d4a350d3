package models

import "time"

// Student is an enrollment record tied to a User account. Deleting a
// student never deletes the underlying User.
type Student struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Course     string    `json:"course"`
	EnrolledAt time.Time `json:"enrollment_date"`
}

// StudentProfile is a Student joined with the owning user's public fields.
type StudentProfile struct {
	Student
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Pagination describes one page of a student listing.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalStudents int  `json:"totalStudents"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
	Limit         int  `json:"limit"`
}
