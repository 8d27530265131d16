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
	// ErrClassNotFound indicates the requested class does not exist or is not visible.
	ErrClassNotFound = errors.New("class not found")
	// ErrNotClassOwner indicates the caller does not own the class.
	ErrNotClassOwner = errors.New("class belongs to another teacher")
)

// ClassService exposes class catalogue use cases.
type ClassService interface {
	List(ctx context.Context, req dto.ClassListRequest) (dto.ClassListResponse, error)
	ListPublished(ctx context.Context, page dto.PageRequest) (dto.ClassListResponse, error)
	ListMine(ctx context.Context, teacher models.User, page dto.PageRequest) (dto.ClassListResponse, error)
	Get(ctx context.Context, id uint) (dto.ClassResponse, error)
	Create(ctx context.Context, teacher models.User, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, teacher models.User, id uint, payload dto.ClassUpdateRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, actor models.User, id uint) error
}

type classService struct {
	repo      repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService builds a class service.
func NewClassService(repo repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context, req dto.ClassListRequest) (dto.ClassListResponse, error) {
	page := req.Page.Normalize()
	classes, total, err := s.repo.List(ctx, repository.ClassFilter{
		Status:    req.Status,
		TeacherID: req.TeacherID,
		Page:      page.Page,
		PageSize:  page.PerPage,
	})
	if err != nil {
		return dto.ClassListResponse{}, err
	}

	return dto.ClassListResponse{
		Items:      dto.NewClassResponseSlice(classes),
		Pagination: dto.NewPaginationMeta(page, total),
	}, nil
}

func (s *classService) ListPublished(ctx context.Context, page dto.PageRequest) (dto.ClassListResponse, error) {
	status := models.StatusAccepted
	return s.List(ctx, dto.ClassListRequest{Status: &status, Page: page})
}

func (s *classService) ListMine(ctx context.Context, teacher models.User, page dto.PageRequest) (dto.ClassListResponse, error) {
	teacherID := teacher.ID
	return s.List(ctx, dto.ClassListRequest{TeacherID: &teacherID, Page: page})
}

func (s *classService) Get(ctx context.Context, id uint) (dto.ClassResponse, error) {
	class, err := s.load(ctx, id)
	if err != nil {
		return dto.ClassResponse{}, err
	}
	return dto.NewClassResponse(class), nil
}

func (s *classService) Create(ctx context.Context, teacher models.User, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Description = strings.TrimSpace(payload.Description)
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		TeacherID:   teacher.ID,
		Title:       payload.Title,
		Name:        teacher.Name,
		Email:       teacher.Email,
		Price:       payload.Price,
		Description: payload.Description,
		Image:       strings.TrimSpace(payload.Image),
		Status:      models.StatusPending,
	}
	if err := s.repo.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Uint("teacher_id", teacher.ID).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classService) Update(ctx context.Context, teacher models.User, id uint, payload dto.ClassUpdateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.load(ctx, id)
	if err != nil {
		return dto.ClassResponse{}, err
	}
	if !class.IsOwnedBy(teacher.ID) {
		return dto.ClassResponse{}, ErrNotClassOwner
	}

	updates := make(map[string]interface{})
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Price != nil {
		updates["price"] = *payload.Price
	}
	if payload.Description != nil {
		updates["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.Image != nil {
		updates["image"] = strings.TrimSpace(*payload.Image)
	}
	if len(updates) == 0 {
		return dto.NewClassResponse(class), nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", id).Msg("class updated")

	return dto.NewClassResponse(updated), nil
}

func (s *classService) Delete(ctx context.Context, actor models.User, id uint) error {
	class, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.HasRole(models.RoleAdmin) && !class.IsOwnedBy(actor.ID) {
		return ErrNotClassOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	s.logger.Info().Uint("class_id", id).Str("actor", actor.Email).Msg("class deleted")
	return nil
}

func (s *classService) load(ctx context.Context, id uint) (models.Class, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Class{}, ErrClassNotFound
		}
		return models.Class{}, err
	}
	return class, nil
}
