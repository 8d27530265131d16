package dto

import (
	"time"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// TeacherApplicationRequest is submitted by a user applying to teach.
type TeacherApplicationRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Image      string `json:"image" validate:"omitempty,url"`
	Title      string `json:"title" validate:"required,max=255"`
	Category   string `json:"category" validate:"required,max=128"`
	Experience string `json:"experience" validate:"required,oneof=beginner experienced 'some idea'"`
}

// DecisionRequest is the admin payload for approving or rejecting an application or class.
type DecisionRequest struct {
	Status string `json:"status" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// TeacherApplicationResponse serializes an application.
type TeacherApplicationResponse struct {
	ID         uint                  `json:"id"`
	UserID     uint                  `json:"userId"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Image      string                `json:"image"`
	Title      string                `json:"title"`
	Category   string                `json:"category"`
	Experience string                `json:"experience"`
	Status     models.ApprovalStatus `json:"status"`
	DecidedAt  *time.Time            `json:"decidedAt,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// TeacherApplicationListResponse wraps a page of applications.
type TeacherApplicationListResponse struct {
	Items      []TeacherApplicationResponse `json:"items"`
	Pagination PaginationMeta               `json:"pagination"`
}

// NewTeacherApplicationResponse converts a model into a DTO.
func NewTeacherApplicationResponse(application models.TeacherApplication) TeacherApplicationResponse {
	return TeacherApplicationResponse{
		ID:         application.ID,
		UserID:     application.UserID,
		Name:       application.Name,
		Email:      application.Email,
		Image:      application.Image,
		Title:      application.Title,
		Category:   application.Category,
		Experience: application.Experience,
		Status:     application.Status,
		DecidedAt:  application.DecidedAt,
		CreatedAt:  application.CreatedAt,
	}
}
