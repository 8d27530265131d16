package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

// ErrEmptyFeedback indicates the review had no text left after sanitising.
var ErrEmptyFeedback = errors.New("feedback description is empty")

// FeedbackService exposes class review use cases.
type FeedbackService interface {
	List(ctx context.Context, classID *uint) ([]dto.FeedbackResponse, error)
	Create(ctx context.Context, student models.User, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedback  repository.FeedbackRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewFeedbackService builds a feedback service.
func NewFeedbackService(feedback repository.FeedbackRepository, classes repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedback:  feedback,
		classes:   classes,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) List(ctx context.Context, classID *uint) ([]dto.FeedbackResponse, error) {
	if classID != nil {
		if _, err := s.classes.GetByID(ctx, *classID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
	}

	items, err := s.feedback.List(ctx, repository.FeedbackFilter{ClassID: classID})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FeedbackResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewFeedbackResponse(item))
	}
	return responses, nil
}

func (s *feedbackService) Create(ctx context.Context, student models.User, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	description := strings.TrimSpace(s.sanitizer.Sanitize(payload.Description))
	if description == "" {
		return dto.FeedbackResponse{}, ErrEmptyFeedback
	}

	class, err := s.classes.GetByID(ctx, payload.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrClassNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	feedback := models.Feedback{
		ClassID:      class.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentImage: student.Image,
		Rating:       payload.Rating,
		Description:  description,
	}
	if err := s.feedback.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}
	feedback.Class = class

	s.logger.Info().Uint("feedback_id", feedback.ID).Uint("class_id", class.ID).Msg("feedback created")

	return dto.NewFeedbackResponse(feedback), nil
}
