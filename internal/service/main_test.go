package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/utils"
	"github.com/noah-isme/skillpath-api/pkg/payment"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newValidator() *validator.Validate {
	return utils.NewValidator()
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createClass(t *testing.T, db *gorm.DB, teacher models.User, title string, status models.ApprovalStatus) models.Class {
	t.Helper()
	class := models.Class{
		TeacherID:   teacher.ID,
		Title:       title,
		Name:        teacher.Name,
		Email:       teacher.Email,
		Price:       20,
		Description: "Learn " + title + " step by step",
		Status:      status,
	}
	require.NoError(t, db.Create(&class).Error)
	return class
}

type recordedEvent struct {
	subject string
	payload interface{}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Publish(_ context.Context, subject string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{subject: subject, payload: payload})
	return nil
}

func (r *eventRecorder) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	subjects := make([]string, 0, len(r.events))
	for _, event := range r.events {
		subjects = append(subjects, event.subject)
	}
	return subjects
}

type gatewayStub struct {
	failures int
	rejected bool
	calls    int
	intents  []payment.Intent
	charged  payment.Result
}

func (g *gatewayStub) Provider() string { return "stub" }

func (g *gatewayStub) CreateIntent(_ context.Context, intent payment.Intent) (payment.Result, error) {
	g.calls++
	g.intents = append(g.intents, intent)
	if g.rejected {
		return payment.Result{}, payment.Rejected(errors.New("card declined"))
	}
	if g.calls <= g.failures {
		return payment.Result{}, errors.New("processor timeout")
	}
	result := g.charged
	result.ClientSecret = fmt.Sprintf("pi_%d_secret_test", intent.Amount)
	return result, nil
}
