package models

import "time"

// TeacherApplication is a request from a user to start teaching on the platform.
type TeacherApplication struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"userId"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;not null;index" json:"email"`
	Image      string         `gorm:"size:512" json:"image"`
	Title      string         `gorm:"size:255" json:"title"`
	Category   string         `gorm:"size:128" json:"category"`
	Experience string         `gorm:"size:64" json:"experience"`
	Status     ApprovalStatus `gorm:"size:16;not null;default:Pending;index" json:"status"`
	DecidedAt  *time.Time     `json:"decidedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	User       User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPending reports whether an admin still has to decide on the application.
func (a TeacherApplication) IsPending() bool {
	return a.Status == StatusPending
}
