package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what a logged-in user is allowed to do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// User is an authenticated account. Students conventionally log in with their
// registration number as username, which is how /api/marks/my and the
// dashboard resolve a User to a Student record.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"default:'student'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
