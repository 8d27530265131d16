package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

var (
	// ErrAssignmentNotFound indicates the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrNotEnrolled indicates the student has no payment recorded for the class.
	ErrNotEnrolled = errors.New("student is not enrolled in this class")
	// ErrAssignmentClosed indicates the deadline has passed.
	ErrAssignmentClosed = errors.New("assignment deadline has passed")
	// ErrInvalidDeadline indicates the deadline is malformed or not in the future.
	ErrInvalidDeadline = errors.New("invalid deadline")
)

// AssignmentService exposes assignment and submission use cases.
type AssignmentService interface {
	ListByClass(ctx context.Context, classID uint, page dto.PageRequest) (dto.AssignmentListResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Submit(ctx context.Context, student models.User, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	classes     repository.ClassRepository
	payments    repository.PaymentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, classes repository.ClassRepository, payments repository.PaymentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		classes:     classes,
		payments:    payments,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) ListByClass(ctx context.Context, classID uint, page dto.PageRequest) (dto.AssignmentListResponse, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentListResponse{}, ErrClassNotFound
		}
		return dto.AssignmentListResponse{}, err
	}

	page = page.Normalize()
	assignments, total, err := s.assignments.List(ctx, repository.AssignmentFilter{
		ClassID:  classID,
		Page:     page.Page,
		PageSize: page.PerPage,
	})
	if err != nil {
		return dto.AssignmentListResponse{}, err
	}

	return dto.AssignmentListResponse{
		Items:      dto.NewAssignmentResponseSlice(assignments),
		Pagination: dto.NewPaginationMeta(page, total),
	}, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Description = strings.TrimSpace(payload.Description)
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	deadline, err := time.Parse(time.RFC3339, payload.Deadline)
	if err != nil {
		return dto.AssignmentResponse{}, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
	}

	if !deadline.After(s.now()) {
		return dto.AssignmentResponse{}, fmt.Errorf("%w: must be in the future", ErrInvalidDeadline)
	}

	class, err := s.classes.GetByID(ctx, payload.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrClassNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	if !class.IsOwnedBy(teacher.ID) {
		return dto.AssignmentResponse{}, ErrNotClassOwner
	}

	assignment := models.Assignment{
		ClassID:     class.ID,
		Title:       payload.Title,
		Description: payload.Description,
		Deadline:    deadline.UTC(),
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("class_id", class.ID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Submit(ctx context.Context, student models.User, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	payload.Content = strings.TrimSpace(payload.Content)
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	if assignment.IsPastDue(now) {
		return dto.SubmissionResponse{}, ErrAssignmentClosed
	}

	enrolled, err := s.payments.ExistsForStudent(ctx, assignment.ClassID, student.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !enrolled {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		ClassID:      assignment.ClassID,
		StudentID:    student.ID,
		Content:      payload.Content,
		SubmittedAt:  now.UTC(),
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Uint("assignment_id", assignment.ID).Uint("student_id", student.ID).Msg("assignment submitted")

	return dto.NewSubmissionResponse(submission), nil
}
