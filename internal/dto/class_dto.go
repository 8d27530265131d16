package dto

import (
	"time"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// ClassCreateRequest is submitted by a teacher proposing a class.
type ClassCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,min=10"`
	Image       string  `json:"image" validate:"omitempty,url"`
}

// ClassUpdateRequest captures partial updates made by the owning teacher.
type ClassUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Description *string  `json:"description" validate:"omitempty,min=10"`
	Image       *string  `json:"image" validate:"omitempty,url"`
}

// ClassListRequest defines filters for listing classes.
type ClassListRequest struct {
	Status    *models.ApprovalStatus
	TeacherID *uint
	Page      PageRequest
}

// ClassResponse serializes a class.
type ClassResponse struct {
	ID          uint                  `json:"id"`
	TeacherID   uint                  `json:"teacherId"`
	Title       string                `json:"title"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Price       float64               `json:"price"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Status      models.ApprovalStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ClassListResponse wraps a page of classes.
type ClassListResponse struct {
	Items      []ClassResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// NewClassResponse converts a model into a DTO.
func NewClassResponse(class models.Class) ClassResponse {
	return ClassResponse{
		ID:          class.ID,
		TeacherID:   class.TeacherID,
		Title:       class.Title,
		Name:        class.Name,
		Email:       class.Email,
		Price:       class.Price,
		Description: class.Description,
		Image:       class.Image,
		Status:      class.Status,
		CreatedAt:   class.CreatedAt,
		UpdatedAt:   class.UpdatedAt,
	}
}

// NewClassResponseSlice converts a slice of models into DTOs.
func NewClassResponseSlice(classes []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewClassResponse(class))
	}
	return responses
}
