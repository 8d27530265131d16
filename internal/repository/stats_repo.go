package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// StatsRepository exposes the full-table reads behind the aggregate endpoints.
type StatsRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListPublishedClasses(ctx context.Context) ([]models.Class, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	CountPaymentsForClass(ctx context.Context, classID uint) (int64, error)
	CountAssignmentsForClass(ctx context.Context, classID uint) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "role").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *statsRepository) ListPublishedClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusAccepted).
		Order("id ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *statsRepository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Select("id", "class_id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *statsRepository) CountPaymentsForClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountAssignmentsForClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}
