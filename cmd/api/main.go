package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/auth"
	"github.com/noah-isme/skillpath-api/internal/config"
	"github.com/noah-isme/skillpath-api/internal/database"
	"github.com/noah-isme/skillpath-api/internal/handler"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
	"github.com/noah-isme/skillpath-api/internal/router"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
	cloud "github.com/noah-isme/skillpath-api/pkg/cloudinary"
	"github.com/noah-isme/skillpath-api/pkg/payment/midtrans"
	"github.com/noah-isme/skillpath-api/pkg/payment/stripe"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "skillpath-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient == nil {
		logger.Warn().Msg("redis url not set, logout will not revoke tokens")
	} else {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	if natsConn == nil {
		logger.Warn().Msg("nats url not set, domain events are dropped")
	} else {
		defer natsConn.Drain()
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, auth.WithDenylist(redisClient))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token service")
	}

	gateway, err := newPaymentGateway(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.PaymentProvider).Msg("failed to create payment gateway")
	}

	var storage service.FileStorage
	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	switch {
	case err == nil:
		storage = uploader
	case errors.Is(err, cloud.ErrMissingCredentials):
		logger.Warn().Msg("cloudinary credentials not set, image uploads are disabled")
	default:
		logger.Fatal().Err(err).Msg("failed to create cloudinary client")
	}

	validate := utils.NewValidator()
	events := service.NewEventPublisher(natsConn, cfg.EventSubjectBase, logger)

	userRepo := repository.NewUserRepository(db)
	applicationRepo := repository.NewTeacherApplicationRepository(db)
	classRepo := repository.NewClassRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	userService := service.NewUserService(userRepo, validate, logger)
	teacherService := service.NewTeacherService(applicationRepo, validate, logger)
	classService := service.NewClassService(classRepo, validate, logger)
	approvalService := service.NewApprovalService(repository.NewApprovalRepository(db), applicationRepo, events, logger)
	paymentService := service.NewPaymentService(paymentRepo, classRepo, gateway, events, validate, service.PaymentConfig{
		Currency:   cfg.PaymentCurrency,
		MaxRetries: cfg.PaymentMaxRetries,
		RetryBase:  cfg.PaymentRetryBase,
	}, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, classRepo, paymentRepo, validate, logger)
	feedbackService := service.NewFeedbackService(repository.NewFeedbackRepository(db), classRepo, validate, logger)
	statsService := service.NewStatsService(repository.NewStatsRepository(db), classRepo, submissionRepo, logger)
	uploadService := service.NewUploadService(storage, cfg.UploadMaxMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(tokens, validate, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		TeacherHandler:    handler.NewTeacherHandler(teacherService, approvalService, logger),
		ClassHandler:      handler.NewClassHandler(classService, approvalService, logger),
		PaymentHandler:    handler.NewPaymentHandler(paymentService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		FeedbackHandler:   handler.NewFeedbackHandler(feedbackService, logger),
		StatsHandler:      handler.NewStatsHandler(statsService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		Guards: handler.Guards{
			JWT: middleware.JWTProtected(tokens, logger),
			Role: func(roles ...models.Role) fiber.Handler {
				return middleware.RequireRole(userService, logger, roles...)
			},
			PaymentIntentLimit: middleware.RateLimit("payment-intent", cfg.PaymentIntentRate, time.Minute),
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("skillpath api started")

	waitForShutdown(app, logger)
}

func newPaymentGateway(cfg config.Config, logger zerolog.Logger) (service.PaymentGateway, error) {
	if cfg.PaymentProvider == "midtrans" {
		return midtrans.New(cfg.MidtransServerKey, cfg.MidtransProduction, logger)
	}
	return stripe.New(cfg.StripeSecretKey, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
