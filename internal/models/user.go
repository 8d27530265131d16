package models

import (
	"strings"
	"time"
)

// Role represents the access level of a marketplace user.
type Role string

// Supported roles.
const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdmin   Role = "Admin"
)

// ParseRole normalises user input into a known role.
func ParseRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "student":
		return RoleStudent, true
	case "teacher":
		return RoleTeacher, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// User is a registered marketplace account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Image     string    `gorm:"size:512" json:"image"`
	Role      Role      `gorm:"size:16;not null;default:Student;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role Role) bool {
	return u.Role == role
}
