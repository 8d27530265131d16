package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// TeacherApplicationFilter narrows application listings.
type TeacherApplicationFilter struct {
	Status   *models.ApprovalStatus
	Page     int
	PageSize int
}

// TeacherApplicationRepository defines persistence operations for teacher applications.
type TeacherApplicationRepository interface {
	List(ctx context.Context, filter TeacherApplicationFilter) ([]models.TeacherApplication, int64, error)
	GetByID(ctx context.Context, id uint) (models.TeacherApplication, error)
	GetLatestByEmail(ctx context.Context, email string) (models.TeacherApplication, error)
	HasPending(ctx context.Context, userID uint) (bool, error)
	Create(ctx context.Context, application *models.TeacherApplication) error
}

type teacherApplicationRepository struct {
	db *gorm.DB
}

// NewTeacherApplicationRepository instantiates the repository.
func NewTeacherApplicationRepository(db *gorm.DB) TeacherApplicationRepository {
	return &teacherApplicationRepository{db: db}
}

func (r *teacherApplicationRepository) List(ctx context.Context, filter TeacherApplicationFilter) ([]models.TeacherApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TeacherApplication{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.TeacherApplication
	if err := paginate(query.Order("id ASC"), filter.Page, filter.PageSize).Find(&applications).Error; err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

func (r *teacherApplicationRepository) GetByID(ctx context.Context, id uint) (models.TeacherApplication, error) {
	var application models.TeacherApplication
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return models.TeacherApplication{}, err
	}
	return application, nil
}

func (r *teacherApplicationRepository) GetLatestByEmail(ctx context.Context, email string) (models.TeacherApplication, error) {
	var application models.TeacherApplication
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Order("id DESC").
		First(&application).Error
	if err != nil {
		return models.TeacherApplication{}, err
	}
	return application, nil
}

func (r *teacherApplicationRepository) HasPending(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeacherApplication{}).
		Where("user_id = ? AND status = ?", userID, models.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teacherApplicationRepository) Create(ctx context.Context, application *models.TeacherApplication) error {
	application.Email = normalizeEmail(application.Email)
	if application.Status == "" {
		application.Status = models.StatusPending
	}
	return r.db.WithContext(ctx).Create(application).Error
}
