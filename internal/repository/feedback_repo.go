package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// FeedbackFilter narrows feedback listings.
type FeedbackFilter struct {
	ClassID *uint
	Limit   int
}

// FeedbackRepository defines persistence operations for class feedback.
type FeedbackRepository interface {
	List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{}).Preload("Class")
	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var feedback []models.Feedback
	if err := query.Order("created_at DESC").Order("id DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}
