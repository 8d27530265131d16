package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

func newApprovalFixture(t *testing.T) (ApprovalService, TeacherService, *eventRecorder, func(string) models.User) {
	t.Helper()
	db := newTestDB(t)
	events := &eventRecorder{}
	applications := repository.NewTeacherApplicationRepository(db)
	approvals := NewApprovalService(repository.NewApprovalRepository(db), applications, events, zerolog.Nop())
	teachers := NewTeacherService(applications, newValidator(), zerolog.Nop())

	reload := func(email string) models.User {
		var user models.User
		require.NoError(t, db.Where("email = ?", email).First(&user).Error)
		return user
	}
	createUser(t, db, "Applicant", "applicant@example.com", models.RoleStudent)
	return approvals, teachers, events, reload
}

func applicationRequest() dto.TeacherApplicationRequest {
	return dto.TeacherApplicationRequest{
		Name:       "Applicant",
		Title:      "Intro to Go",
		Category:   "programming",
		Experience: "experienced",
	}
}

func TestApprovalServiceAcceptPromotesApplicant(t *testing.T) {
	approvals, teachers, events, reload := newApprovalFixture(t)
	applicant := reload("applicant@example.com")
	admin := models.User{ID: 99, Email: "admin@example.com", Role: models.RoleAdmin}

	application, err := teachers.Apply(context.Background(), applicant, applicationRequest())
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, application.Status)

	decided, err := approvals.DecideApplication(context.Background(), admin, application.ID, dto.DecisionRequest{Status: "accepted", Email: "APPLICANT@example.com"})
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, decided.Status)
	require.Equal(t, models.RoleTeacher, reload("applicant@example.com").Role)
	require.Equal(t, []string{SubjectApplicationDecided}, events.subjects())

	_, err = approvals.DecideApplication(context.Background(), admin, application.ID, dto.DecisionRequest{Status: "Rejected"})
	require.ErrorIs(t, err, ErrAlreadyDecided)
	require.Equal(t, models.RoleTeacher, reload("applicant@example.com").Role)
}

func TestApprovalServiceRejectKeepsRole(t *testing.T) {
	approvals, teachers, _, reload := newApprovalFixture(t)
	applicant := reload("applicant@example.com")

	application, err := teachers.Apply(context.Background(), applicant, applicationRequest())
	require.NoError(t, err)

	decided, err := approvals.DecideApplication(context.Background(), models.User{Email: "admin@example.com"}, application.ID, dto.DecisionRequest{Status: "Rejected"})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, decided.Status)
	require.Equal(t, models.RoleStudent, reload("applicant@example.com").Role)
}

func TestApprovalServiceRejectsUnknownStatusAndMismatchedEmail(t *testing.T) {
	approvals, teachers, events, reload := newApprovalFixture(t)
	applicant := reload("applicant@example.com")

	application, err := teachers.Apply(context.Background(), applicant, applicationRequest())
	require.NoError(t, err)

	_, err = approvals.DecideApplication(context.Background(), models.User{}, application.ID, dto.DecisionRequest{Status: "maybe"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = approvals.DecideApplication(context.Background(), models.User{}, application.ID, dto.DecisionRequest{Status: "Accepted", Email: "someone@example.com"})
	require.ErrorIs(t, err, ErrApplicantMismatch)

	_, err = approvals.DecideApplication(context.Background(), models.User{}, 4040, dto.DecisionRequest{Status: "Accepted"})
	require.ErrorIs(t, err, ErrApplicationNotFound)

	require.Equal(t, models.RoleStudent, reload("applicant@example.com").Role)
	require.Empty(t, events.subjects())
}

func TestTeacherServiceRejectsSecondPendingApplication(t *testing.T) {
	_, teachers, _, reload := newApprovalFixture(t)
	applicant := reload("applicant@example.com")

	_, err := teachers.Apply(context.Background(), applicant, applicationRequest())
	require.NoError(t, err)

	_, err = teachers.Apply(context.Background(), applicant, applicationRequest())
	require.ErrorIs(t, err, ErrPendingApplicationExists)

	latest, err := teachers.GetByEmail(context.Background(), "applicant@example.com")
	require.NoError(t, err)
	require.Equal(t, "Intro to Go", latest.Title)

	_, err = teachers.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApprovalServiceDecideClass(t *testing.T) {
	db := newTestDB(t)
	events := &eventRecorder{}
	svc := NewApprovalService(repository.NewApprovalRepository(db), repository.NewTeacherApplicationRepository(db), events, zerolog.Nop())
	teacher := createUser(t, db, "Tess", "tess@example.com", models.RoleTeacher)
	class := createClass(t, db, teacher, "Sketching", models.StatusPending)

	decided, err := svc.DecideClass(context.Background(), models.User{Email: "admin@example.com"}, class.ID, dto.DecisionRequest{Status: "Accepted"})
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, decided.Status)

	_, err = svc.DecideClass(context.Background(), models.User{}, class.ID, dto.DecisionRequest{Status: "Pending"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.DecideClass(context.Background(), models.User{}, 999, dto.DecisionRequest{Status: "Rejected"})
	require.ErrorIs(t, err, ErrClassNotFound)

	require.Equal(t, []string{SubjectClassDecided}, events.subjects())
}
