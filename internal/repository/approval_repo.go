package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// ErrAlreadyDecided indicates the record has left the Pending state.
var ErrAlreadyDecided = errors.New("approval already decided")

// ApprovalRepository applies admin decisions. Every method runs in a single
// transaction covering the status change, any role promotion and the audit row.
type ApprovalRepository interface {
	DecideApplication(ctx context.Context, applicationID uint, status models.ApprovalStatus, audit models.ApprovalAudit) (models.TeacherApplication, error)
	DecideClass(ctx context.Context, classID uint, status models.ApprovalStatus, audit models.ApprovalAudit) (models.Class, error)
}

type approvalRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewApprovalRepository instantiates the repository.
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db, now: time.Now}
}

func (r *approvalRepository) DecideApplication(ctx context.Context, applicationID uint, status models.ApprovalStatus, audit models.ApprovalAudit) (models.TeacherApplication, error) {
	var application models.TeacherApplication

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		decidedAt := r.now().UTC()
		update := tx.Model(&models.TeacherApplication{}).
			Where("id = ? AND status = ?", applicationID, models.StatusPending).
			Updates(map[string]interface{}{"status": status, "decided_at": decidedAt})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			if err := tx.First(&application, applicationID).Error; err != nil {
				return err
			}
			return ErrAlreadyDecided
		}

		if err := tx.First(&application, applicationID).Error; err != nil {
			return err
		}

		if status == models.StatusAccepted {
			promote := tx.Model(&models.User{}).
				Where("id = ?", application.UserID).
				Update("role", models.RoleTeacher)
			if promote.Error != nil {
				return promote.Error
			}
			if promote.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		audit.EntityType = models.AuditEntityApplication
		audit.EntityID = application.ID
		audit.FromStatus = models.StatusPending
		audit.ToStatus = status
		return tx.Create(&audit).Error
	})
	if err != nil {
		return application, err
	}

	return application, nil
}

func (r *approvalRepository) DecideClass(ctx context.Context, classID uint, status models.ApprovalStatus, audit models.ApprovalAudit) (models.Class, error) {
	var class models.Class

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&class, classID).Error; err != nil {
			return err
		}

		previous := class.Status
		if err := tx.Model(&models.Class{}).Where("id = ?", class.ID).Update("status", status).Error; err != nil {
			return err
		}
		class.Status = status

		audit.EntityType = models.AuditEntityClass
		audit.EntityID = class.ID
		audit.FromStatus = previous
		audit.ToStatus = status
		return tx.Create(&audit).Error
	})
	if err != nil {
		return models.Class{}, err
	}

	return class, nil
}
