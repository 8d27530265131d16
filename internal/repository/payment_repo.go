package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// PaymentRepository defines persistence operations for payment receipts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetLatestByClass(ctx context.Context, classID uint) (models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	ListByStudentEmail(ctx context.Context, email string) ([]models.Payment, error)
	ExistsForStudent(ctx context.Context, classID, studentID uint) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.StudentEmail = normalizeEmail(payment.StudentEmail)
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetLatestByClass(ctx context.Context, classID uint) (models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	payment.StudentEmail = normalizeEmail(payment.StudentEmail)
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) ListByStudentEmail(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("student_email = ?", normalizeEmail(email)).
		Order("id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) ExistsForStudent(ctx context.Context, classID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
