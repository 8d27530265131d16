package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/observability"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

var (
	// ErrInvalidStatus indicates a decision other than Accepted or Rejected.
	ErrInvalidStatus = errors.New("status must be Accepted or Rejected")
	// ErrAlreadyDecided indicates the application left the Pending state earlier.
	ErrAlreadyDecided = errors.New("application has already been decided")
	// ErrApplicantMismatch indicates the email in the decision does not belong to the application.
	ErrApplicantMismatch = errors.New("email does not match the application")
)

// ApprovalService applies admin decisions to teacher applications and classes.
type ApprovalService interface {
	DecideApplication(ctx context.Context, actor models.User, applicationID uint, payload dto.DecisionRequest) (dto.TeacherApplicationResponse, error)
	DecideClass(ctx context.Context, actor models.User, classID uint, payload dto.DecisionRequest) (dto.ClassResponse, error)
}

type approvalService struct {
	approvals    repository.ApprovalRepository
	applications repository.TeacherApplicationRepository
	events       EventPublisher
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewApprovalService builds the approval workflow.
func NewApprovalService(approvals repository.ApprovalRepository, applications repository.TeacherApplicationRepository, events EventPublisher, logger zerolog.Logger) ApprovalService {
	if events == nil {
		events = noopEventPublisher{}
	}
	return &approvalService{
		approvals:    approvals,
		applications: applications,
		events:       events,
		logger:       logger.With().Str("component", "approval_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/skillpath-api/internal/service/approval"),
	}
}

func (s *approvalService) DecideApplication(ctx context.Context, actor models.User, applicationID uint, payload dto.DecisionRequest) (dto.TeacherApplicationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "approvals.application", trace.WithAttributes(
		attribute.Int64("application.id", int64(applicationID)),
		attribute.String("approval.requested_status", payload.Status),
	))
	defer span.End()

	status, ok := models.ParseDecision(payload.Status)
	if !ok {
		span.SetStatus(codes.Error, "invalid status")
		return dto.TeacherApplicationResponse{}, ErrInvalidStatus
	}

	if email := strings.TrimSpace(payload.Email); email != "" {
		application, err := s.applications.GetByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TeacherApplicationResponse{}, ErrApplicationNotFound
			}
			span.RecordError(err)
			return dto.TeacherApplicationResponse{}, err
		}
		if !strings.EqualFold(application.Email, email) {
			span.SetStatus(codes.Error, "applicant mismatch")
			return dto.TeacherApplicationResponse{}, ErrApplicantMismatch
		}
	}

	audit := models.ApprovalAudit{
		ActorEmail: actor.Email,
		Metadata:   datatypes.JSONMap{"actorId": actor.ID},
	}
	application, err := s.approvals.DecideApplication(ctx, applicationID, status, audit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decision failed")
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.TeacherApplicationResponse{}, ErrApplicationNotFound
		case errors.Is(err, repository.ErrAlreadyDecided):
			return dto.TeacherApplicationResponse{}, ErrAlreadyDecided
		default:
			return dto.TeacherApplicationResponse{}, err
		}
	}

	observability.ApprovalDecisions().WithLabelValues(models.AuditEntityApplication, string(status)).Inc()
	span.SetStatus(codes.Ok, string(status))

	response := dto.NewTeacherApplicationResponse(application)
	if err := s.events.Publish(ctx, SubjectApplicationDecided, response); err != nil {
		s.logger.Warn().Err(err).Uint("application_id", applicationID).Msg("application decision event not delivered")
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Uint("user_id", application.UserID).
		Str("status", string(status)).
		Str("actor", actor.Email).
		Msg("teacher application decided")

	return response, nil
}

func (s *approvalService) DecideClass(ctx context.Context, actor models.User, classID uint, payload dto.DecisionRequest) (dto.ClassResponse, error) {
	ctx, span := s.tracer.Start(ctx, "approvals.class", trace.WithAttributes(
		attribute.Int64("class.id", int64(classID)),
		attribute.String("approval.requested_status", payload.Status),
	))
	defer span.End()

	status, ok := models.ParseDecision(payload.Status)
	if !ok {
		span.SetStatus(codes.Error, "invalid status")
		return dto.ClassResponse{}, ErrInvalidStatus
	}

	audit := models.ApprovalAudit{
		ActorEmail: actor.Email,
		Metadata:   datatypes.JSONMap{"actorId": actor.ID},
	}
	class, err := s.approvals.DecideClass(ctx, classID, status, audit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decision failed")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	observability.ApprovalDecisions().WithLabelValues(models.AuditEntityClass, string(status)).Inc()
	span.SetStatus(codes.Ok, string(status))

	response := dto.NewClassResponse(class)
	if err := s.events.Publish(ctx, SubjectClassDecided, response); err != nil {
		s.logger.Warn().Err(err).Uint("class_id", classID).Msg("class decision event not delivered")
	}

	s.logger.Info().Uint("class_id", classID).Str("status", string(status)).Str("actor", actor.Email).Msg("class decided")

	return response, nil
}
