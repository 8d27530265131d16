package models

import "time"

// Class is a course offered by a teacher. Only accepted classes are visible to students.
type Class struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TeacherID   uint           `gorm:"not null;index" json:"teacherId"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Name        string         `gorm:"size:255" json:"name"`
	Email       string         `gorm:"size:255;index" json:"email"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"size:512" json:"image"`
	Status      ApprovalStatus `gorm:"size:16;not null;default:Pending;index" json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Teacher     User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPublished reports whether students may enroll in the class.
func (c Class) IsPublished() bool {
	return c.Status == StatusAccepted
}

// IsOwnedBy reports whether the class belongs to the given teacher.
func (c Class) IsOwnedBy(userID uint) bool {
	return c.TeacherID == userID
}
