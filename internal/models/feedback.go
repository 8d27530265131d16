package models

import "time"

// Feedback is a student's review of a class.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClassID      uint      `gorm:"not null;index" json:"classId"`
	StudentID    uint      `gorm:"not null;index" json:"studentId"`
	StudentName  string    `gorm:"size:255" json:"studentName"`
	StudentImage string    `gorm:"size:512" json:"studentImage"`
	Rating       int       `gorm:"not null" json:"rating"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	Class        Class     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
