package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

var (
	// ErrApplicationNotFound indicates the requested teacher application does not exist.
	ErrApplicationNotFound = errors.New("teacher application not found")
	// ErrPendingApplicationExists indicates the user already waits on a decision.
	ErrPendingApplicationExists = errors.New("a pending application already exists")
)

// TeacherService exposes the teacher application use cases.
type TeacherService interface {
	Apply(ctx context.Context, applicant models.User, payload dto.TeacherApplicationRequest) (dto.TeacherApplicationResponse, error)
	List(ctx context.Context, page dto.PageRequest) (dto.TeacherApplicationListResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.TeacherApplicationResponse, error)
}

type teacherService struct {
	repo      repository.TeacherApplicationRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService builds a teacher application service.
func NewTeacherService(repo repository.TeacherApplicationRepository, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Apply(ctx context.Context, applicant models.User, payload dto.TeacherApplicationRequest) (dto.TeacherApplicationResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Category = strings.TrimSpace(payload.Category)
	payload.Experience = strings.ToLower(strings.TrimSpace(payload.Experience))
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherApplicationResponse{}, err
	}

	pending, err := s.repo.HasPending(ctx, applicant.ID)
	if err != nil {
		return dto.TeacherApplicationResponse{}, err
	}
	if pending {
		return dto.TeacherApplicationResponse{}, ErrPendingApplicationExists
	}

	image := strings.TrimSpace(payload.Image)
	if image == "" {
		image = applicant.Image
	}

	application := models.TeacherApplication{
		UserID:     applicant.ID,
		Name:       payload.Name,
		Email:      applicant.Email,
		Image:      image,
		Title:      payload.Title,
		Category:   payload.Category,
		Experience: payload.Experience,
		Status:     models.StatusPending,
	}
	if err := s.repo.Create(ctx, &application); err != nil {
		return dto.TeacherApplicationResponse{}, err
	}

	s.logger.Info().Uint("application_id", application.ID).Uint("user_id", applicant.ID).Msg("teacher application submitted")

	return dto.NewTeacherApplicationResponse(application), nil
}

func (s *teacherService) List(ctx context.Context, page dto.PageRequest) (dto.TeacherApplicationListResponse, error) {
	page = page.Normalize()
	applications, total, err := s.repo.List(ctx, repository.TeacherApplicationFilter{
		Page:     page.Page,
		PageSize: page.PerPage,
	})
	if err != nil {
		return dto.TeacherApplicationListResponse{}, err
	}

	items := make([]dto.TeacherApplicationResponse, 0, len(applications))
	for _, application := range applications {
		items = append(items, dto.NewTeacherApplicationResponse(application))
	}

	return dto.TeacherApplicationListResponse{Items: items, Pagination: dto.NewPaginationMeta(page, total)}, nil
}

func (s *teacherService) GetByEmail(ctx context.Context, email string) (dto.TeacherApplicationResponse, error) {
	application, err := s.repo.GetLatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.TeacherApplicationResponse{}, err
	}
	return dto.NewTeacherApplicationResponse(application), nil
}
