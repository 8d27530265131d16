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
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates an account with the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidRole indicates a role outside Student, Teacher and Admin.
	ErrInvalidRole = errors.New("invalid role")
)

// UserService exposes account use cases.
type UserService interface {
	List(ctx context.Context, req dto.UserListRequest) (dto.UserListResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.UserResponse, error)
	Lookup(ctx context.Context, email string) (models.User, error)
	Register(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error)
	UpdateRole(ctx context.Context, id uint, payload dto.UserRoleUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService builds a user service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest) (dto.UserListResponse, error) {
	page := req.Page.Normalize()
	users, total, err := s.repo.List(ctx, repository.UserFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     page.Page,
		PageSize: page.PerPage,
	})
	if err != nil {
		return dto.UserListResponse{}, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserResponse(user))
	}

	return dto.UserListResponse{Items: items, Pagination: dto.NewPaginationMeta(page, total)}, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (dto.UserResponse, error) {
	user, err := s.Lookup(ctx, email)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

// Lookup resolves an authenticated email into the stored account.
func (s *userService) Lookup(ctx context.Context, email string) (models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, payload.Email); err == nil {
		return dto.UserResponse{}, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: strings.TrimSpace(payload.Phone),
		Image: strings.TrimSpace(payload.Image),
		Role:  models.RoleStudent,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user registered")

	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateRole(ctx context.Context, id uint, payload dto.UserRoleUpdateRequest) (dto.UserResponse, error) {
	role, ok := models.ParseRole(payload.Role)
	if !ok {
		return dto.UserResponse{}, ErrInvalidRole
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", id).Str("role", string(role)).Msg("user role updated")

	return dto.NewUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}
