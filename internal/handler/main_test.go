package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/skillpath-api/internal/auth"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
	"github.com/noah-isme/skillpath-api/pkg/payment"
)

type gatewayStub struct{}

func (gatewayStub) Provider() string { return "stub" }

func (gatewayStub) CreateIntent(_ context.Context, intent payment.Intent) (payment.Result, error) {
	return payment.Result{ClientSecret: fmt.Sprintf("pi_%d_secret", intent.Amount)}, nil
}

type storageStub struct{}

func (storageStub) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://cdn.example.com/" + name, nil
}

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	tokens, err := auth.NewTokenService("handler-test-secret", auth.DefaultTTL, auth.WithDenylist(redisClient))
	require.NoError(t, err)

	log := zerolog.Nop()
	validate := utils.NewValidator()

	users := repository.NewUserRepository(db)
	applications := repository.NewTeacherApplicationRepository(db)
	classes := repository.NewClassRepository(db)
	payments := repository.NewPaymentRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	submissions := repository.NewSubmissionRepository(db)

	userService := service.NewUserService(users, validate, log)
	approvalService := service.NewApprovalService(repository.NewApprovalRepository(db), applications, nil, log)

	guards := Guards{
		JWT: middleware.JWTProtected(tokens, log),
		Role: func(roles ...models.Role) fiber.Handler {
			return middleware.RequireRole(userService, log, roles...)
		},
		PaymentIntentLimit: middleware.RateLimit("payment-intent", 100, time.Minute),
	}

	app := fiber.New()
	api := app.Group("/api/v1")
	NewAuthHandler(tokens, validate, log).Register(api, guards)
	NewUserHandler(userService, log).Register(api, guards)
	NewTeacherHandler(service.NewTeacherService(applications, validate, log), approvalService, log).Register(api, guards)
	NewClassHandler(service.NewClassService(classes, validate, log), approvalService, log).Register(api, guards)
	NewPaymentHandler(service.NewPaymentService(payments, classes, gatewayStub{}, nil, validate, service.PaymentConfig{Currency: "usd", MaxRetries: 1}, log), log).Register(api, guards)
	NewAssignmentHandler(service.NewAssignmentService(assignments, submissions, classes, payments, validate, log), log).Register(api, guards)
	NewFeedbackHandler(service.NewFeedbackService(repository.NewFeedbackRepository(db), classes, validate, log), log).Register(api, guards)
	NewStatsHandler(service.NewStatsService(repository.NewStatsRepository(db), classes, submissions, log), log).Register(api, guards)
	NewUploadHandler(service.NewUploadService(storageStub{}, 1, log), log).Register(api, guards)

	return &testEnv{app: app, db: db, tokens: tokens}
}

func (e *testEnv) user(t *testing.T, name, email string, role models.Role) (models.User, string) {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, e.db.Create(&user).Error)
	token, _, err := e.tokens.Issue(email)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) class(t *testing.T, teacher models.User, title string, status models.ApprovalStatus) models.Class {
	t.Helper()
	class := models.Class{
		TeacherID:   teacher.ID,
		Title:       title,
		Name:        teacher.Name,
		Email:       teacher.Email,
		Price:       20,
		Description: "Everything about " + title,
		Status:      status,
	}
	require.NoError(t, e.db.Create(&class).Error)
	return class
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, utils.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

// decodeData re-marshals the envelope data into target.
func decodeData(t *testing.T, envelope utils.APIResponse, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}
