package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

func seedApplication(t *testing.T, db *gorm.DB, userID uint, email string) models.TeacherApplication {
	t.Helper()
	application := models.TeacherApplication{
		UserID:     userID,
		Name:       "Applicant",
		Email:      email,
		Title:      "Go for beginners",
		Category:   "programming",
		Experience: "experienced",
		Status:     models.StatusPending,
	}
	require.NoError(t, db.Create(&application).Error)
	return application
}

func TestApprovalRepositoryAcceptPromotesUserAndAudits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalRepository(db)
	user := seedUser(t, db, "dana@example.com", models.RoleStudent)
	application := seedApplication(t, db, user.ID, user.Email)

	decided, err := repo.DecideApplication(context.Background(), application.ID, models.StatusAccepted, models.ApprovalAudit{ActorEmail: "admin@example.com"})
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleTeacher, reloaded.Role)

	var audits []models.ApprovalAudit
	require.NoError(t, db.Find(&audits).Error)
	require.Len(t, audits, 1)
	require.Equal(t, models.AuditEntityApplication, audits[0].EntityType)
	require.Equal(t, models.StatusPending, audits[0].FromStatus)
	require.Equal(t, models.StatusAccepted, audits[0].ToStatus)
}

func TestApprovalRepositoryRejectLeavesRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalRepository(db)
	user := seedUser(t, db, "erin@example.com", models.RoleStudent)
	application := seedApplication(t, db, user.ID, user.Email)

	decided, err := repo.DecideApplication(context.Background(), application.ID, models.StatusRejected, models.ApprovalAudit{})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, decided.Status)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleStudent, reloaded.Role)
}

func TestApprovalRepositoryDecidesOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalRepository(db)
	user := seedUser(t, db, "finn@example.com", models.RoleStudent)
	application := seedApplication(t, db, user.ID, user.Email)

	_, err := repo.DecideApplication(context.Background(), application.ID, models.StatusRejected, models.ApprovalAudit{})
	require.NoError(t, err)

	_, err = repo.DecideApplication(context.Background(), application.ID, models.StatusAccepted, models.ApprovalAudit{})
	require.ErrorIs(t, err, ErrAlreadyDecided)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleStudent, reloaded.Role)

	_, err = repo.DecideApplication(context.Background(), 4242, models.StatusAccepted, models.ApprovalAudit{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApprovalRepositoryRollsBackWhenApplicantMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalRepository(db)
	application := seedApplication(t, db, 777, "ghost@example.com")

	_, err := repo.DecideApplication(context.Background(), application.ID, models.StatusAccepted, models.ApprovalAudit{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reloaded models.TeacherApplication
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	require.Equal(t, models.StatusPending, reloaded.Status)

	var audits int64
	require.NoError(t, db.Model(&models.ApprovalAudit{}).Count(&audits).Error)
	require.Zero(t, audits)
}

func TestApprovalRepositoryDecideClass(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalRepository(db)
	teacher := seedUser(t, db, "gina@example.com", models.RoleTeacher)
	class := seedClass(t, db, teacher, "Watercolour", models.StatusPending)

	decided, err := repo.DecideClass(context.Background(), class.ID, models.StatusAccepted, models.ApprovalAudit{})
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, decided.Status)

	decided, err = repo.DecideClass(context.Background(), class.ID, models.StatusRejected, models.ApprovalAudit{})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, decided.Status)

	_, err = repo.DecideClass(context.Background(), 999, models.StatusAccepted, models.ApprovalAudit{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
