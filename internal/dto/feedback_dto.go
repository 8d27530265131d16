package dto

import (
	"time"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// FeedbackCreateRequest is a student's review of a class.
type FeedbackCreateRequest struct {
	ClassID     uint   `json:"classId" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required,max=2000"`
}

// FeedbackResponse serializes a review.
type FeedbackResponse struct {
	ID           uint      `json:"id"`
	ClassID      uint      `json:"classId"`
	ClassTitle   string    `json:"classTitle,omitempty"`
	StudentName  string    `json:"studentName"`
	StudentImage string    `json:"studentImage"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(feedback models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           feedback.ID,
		ClassID:      feedback.ClassID,
		ClassTitle:   feedback.Class.Title,
		StudentName:  feedback.StudentName,
		StudentImage: feedback.StudentImage,
		Rating:       feedback.Rating,
		Description:  feedback.Description,
		CreatedAt:    feedback.CreatedAt,
	}
}
