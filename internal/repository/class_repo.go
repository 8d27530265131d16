package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// ClassFilter narrows class listings.
type ClassFilter struct {
	Status    *models.ApprovalStatus
	TeacherID *uint
	Page      int
	PageSize  int
}

// ClassRepository defines persistence operations for classes.
type ClassRepository interface {
	List(ctx context.Context, filter ClassFilter) ([]models.Class, int64, error)
	GetByID(ctx context.Context, id uint) (models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Class, error)
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates the repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) List(ctx context.Context, filter ClassFilter) ([]models.Class, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Class{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []models.Class
	if err := paginate(query.Order("id ASC"), filter.Page, filter.PageSize).Find(&classes).Error; err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.Class{}, err
	}
	return class, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	if class.Status == "" {
		class.Status = models.StatusPending
	}
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Class, error) {
	result := r.db.WithContext(ctx).Model(&models.Class{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Class{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Class{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
