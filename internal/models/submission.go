package models

import "time"

// Submission is a student's answer to an assignment.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;index" json:"assignmentId"`
	ClassID      uint       `gorm:"not null;index" json:"classId"`
	StudentID    uint       `gorm:"not null;index" json:"studentId"`
	Content      string     `gorm:"type:text" json:"content"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submittedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
