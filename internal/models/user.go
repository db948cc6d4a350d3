package models

import "time"

// Role is the closed set of account roles. Keeping it a distinct type
// forces authorization checks through the constants below instead of
// ad-hoc string comparisons.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	}
	return false
}

// User is an identity record. Email is unique at the store level.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don't expose hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
