package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/observability"
	"github.com/noah-isme/skillpath-api/internal/repository"
	"github.com/noah-isme/skillpath-api/pkg/payment"
)

var (
	// ErrPaymentGateway indicates the payment processor could not create an intent.
	ErrPaymentGateway = errors.New("payment processor unavailable")
	// ErrPaymentRejected indicates the processor refused the intent and retrying will not help.
	ErrPaymentRejected = errors.New("payment rejected by processor")
	// ErrEnrollmentNotFound indicates no payment has been recorded for the class yet.
	ErrEnrollmentNotFound = errors.New("no enrollment recorded for class")
)

// PaymentGateway creates client-confirmable payment intents at an external processor.
type PaymentGateway interface {
	Provider() string
	CreateIntent(ctx context.Context, intent payment.Intent) (payment.Result, error)
}

// PaymentConfig tunes the payment service.
type PaymentConfig struct {
	Currency   string
	MaxRetries int
	RetryBase  time.Duration
}

// PaymentService exposes payment and enrollment use cases.
type PaymentService interface {
	CreateIntent(ctx context.Context, payload dto.PaymentIntentRequest) (dto.PaymentIntentResponse, error)
	Record(ctx context.Context, student models.User, payload dto.PaymentCreateRequest) (dto.PaymentResponse, error)
	UpdateEnrollment(ctx context.Context, classID uint, payload dto.EnrollmentUpdateRequest) (dto.PaymentResponse, error)
	MyEnrolled(ctx context.Context, email string) ([]dto.EnrolledClassResponse, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	classes   repository.ClassRepository
	gateway   PaymentGateway
	events    EventPublisher
	validator *validator.Validate
	cfg       PaymentConfig
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewPaymentService builds a payment service.
func NewPaymentService(payments repository.PaymentRepository, classes repository.ClassRepository, gateway PaymentGateway, events EventPublisher, validate *validator.Validate, cfg PaymentConfig, logger zerolog.Logger) PaymentService {
	if events == nil {
		events = noopEventPublisher{}
	}
	cfg.Currency = strings.ToLower(strings.TrimSpace(cfg.Currency))
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 200 * time.Millisecond
	}

	return &paymentService{
		payments:  payments,
		classes:   classes,
		gateway:   gateway,
		events:    events,
		validator: validate,
		cfg:       cfg,
		logger:    logger.With().Str("component", "payment_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/skillpath-api/internal/service/payment"),
	}
}

// MinorUnits converts a decimal price into the smallest currency unit.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *paymentService) CreateIntent(ctx context.Context, payload dto.PaymentIntentRequest) (dto.PaymentIntentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentIntentResponse{}, err
	}

	amount := MinorUnits(payload.Price)
	provider := s.gateway.Provider()

	ctx, span := s.tracer.Start(ctx, "payments.intent", trace.WithAttributes(
		attribute.String("payment.provider", provider),
		attribute.Int64("payment.amount", amount),
		attribute.String("payment.currency", s.cfg.Currency),
	))
	defer span.End()

	intent := payment.Intent{
		Amount:         amount,
		Currency:       s.cfg.Currency,
		IdempotencyKey: uuid.NewString(),
	}

	attempts := 0
	backoff := retry.WithMaxRetries(uint64(s.cfg.MaxRetries-1), retry.NewExponential(s.cfg.RetryBase))

	var result payment.Result
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		created, err := s.gateway.CreateIntent(ctx, intent)
		if err != nil {
			s.logger.Warn().Err(err).Int("attempt", attempts).Str("provider", provider).Msg("payment intent attempt failed")
			if errors.Is(err, payment.ErrRejected) {
				return err
			}
			return retry.RetryableError(err)
		}
		result = created
		return nil
	})
	span.SetAttributes(attribute.Int("payment.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, payment.ErrRejected) {
			observability.PaymentIntents().WithLabelValues(provider, "rejected").Inc()
			span.SetStatus(codes.Error, "rejected")
			return dto.PaymentIntentResponse{}, ErrPaymentRejected
		}
		observability.PaymentIntents().WithLabelValues(provider, "failed").Inc()
		span.SetStatus(codes.Error, "gateway failed")
		s.logger.Error().Err(err).Int("attempts", attempts).Str("provider", provider).Msg("payment intent failed")
		return dto.PaymentIntentResponse{}, ErrPaymentGateway
	}

	observability.PaymentIntents().WithLabelValues(provider, "created").Inc()
	span.SetStatus(codes.Ok, "created")

	if result.Amount == 0 {
		result.Amount = amount
	}
	if result.Currency == "" {
		result.Currency = s.cfg.Currency
	}

	return dto.PaymentIntentResponse{
		ClientSecret: result.ClientSecret,
		Amount:       result.Amount,
		Currency:     strings.ToLower(result.Currency),
		Provider:     provider,
	}, nil
}

func (s *paymentService) Record(ctx context.Context, student models.User, payload dto.PaymentCreateRequest) (dto.PaymentResponse, error) {
	payload.TransactionID = strings.TrimSpace(payload.TransactionID)
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, payload.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PaymentResponse{}, ErrClassNotFound
		}
		return dto.PaymentResponse{}, err
	}
	if !class.IsPublished() {
		return dto.PaymentResponse{}, ErrClassNotFound
	}

	amount := payload.Price
	if amount <= 0 {
		amount = class.Price
	}

	payment := models.Payment{
		ClassID:       class.ID,
		StudentID:     student.ID,
		StudentEmail:  student.Email,
		TransactionID: payload.TransactionID,
		Amount:        amount,
		TotalEnrolled: payload.TotalEnrolled,
	}
	if err := s.payments.Create(ctx, &payment); err != nil {
		return dto.PaymentResponse{}, err
	}

	response := dto.NewPaymentResponse(payment)
	if err := s.events.Publish(ctx, SubjectEnrollment, response); err != nil {
		s.logger.Warn().Err(err).Uint("payment_id", payment.ID).Msg("enrollment event not delivered")
	}

	s.logger.Info().Uint("payment_id", payment.ID).Uint("class_id", class.ID).Uint("student_id", student.ID).Msg("payment recorded")

	return response, nil
}

func (s *paymentService) UpdateEnrollment(ctx context.Context, classID uint, payload dto.EnrollmentUpdateRequest) (dto.PaymentResponse, error) {
	payload.StudentEmail = strings.TrimSpace(payload.StudentEmail)
	payload.TransactionID = strings.TrimSpace(payload.TransactionID)
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentResponse{}, err
	}

	payment, err := s.payments.GetLatestByClass(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PaymentResponse{}, ErrEnrollmentNotFound
		}
		return dto.PaymentResponse{}, err
	}

	payment.TotalEnrolled = payload.TotalEnrolled + 1
	payment.StudentEmail = strings.ToLower(payload.StudentEmail)
	payment.TransactionID = payload.TransactionID
	if err := s.payments.Update(ctx, &payment); err != nil {
		return dto.PaymentResponse{}, err
	}

	s.logger.Info().Uint("class_id", classID).Int("total_enrolled", payment.TotalEnrolled).Msg("enrollment counter updated")

	return dto.NewPaymentResponse(payment), nil
}

func (s *paymentService) MyEnrolled(ctx context.Context, email string) ([]dto.EnrolledClassResponse, error) {
	payments, err := s.payments.ListByStudentEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	results := make([]dto.EnrolledClassResponse, 0, len(payments))
	for _, payment := range payments {
		results = append(results, dto.EnrolledClassResponse{
			Payment: dto.NewPaymentResponse(payment),
			Class:   dto.NewClassResponse(payment.Class),
		})
	}
	return results, nil
}
