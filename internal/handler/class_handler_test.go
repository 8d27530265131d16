package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
)

func TestPublishedCatalogueHidesUndecidedClasses(t *testing.T) {
	env := newTestEnv(t)
	teacher, _ := env.user(t, "Tara", "tara@example.com", models.RoleTeacher)
	_, adminToken := env.user(t, "Ada", "ada@example.com", models.RoleAdmin)

	env.class(t, teacher, "Go basics", models.StatusAccepted)
	env.class(t, teacher, "Rust basics", models.StatusPending)
	env.class(t, teacher, "Zig basics", models.StatusRejected)
	env.class(t, teacher, "SQL basics", models.StatusAccepted)

	status, envelope := env.do(t, http.MethodGet, "/api/v1/classes?currentPage=1&itemsPerPage=1", "", nil)
	require.Equal(t, http.StatusOK, status)

	var classes []dto.ClassResponse
	decodeData(t, envelope, &classes)
	require.Len(t, classes, 1)
	require.Equal(t, "Go basics", classes[0].Title)

	meta, ok := envelope.Meta.(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 2, meta["totalItems"])

	status, envelope = env.do(t, http.MethodGet, "/api/v1/classes/all?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &classes)
	require.Len(t, classes, 1)
	require.Equal(t, "Rust basics", classes[0].Title)

	status, _ = env.do(t, http.MethodGet, "/api/v1/classes/all?status=sometimes", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestTeacherProposesAndAdminPublishesClass(t *testing.T) {
	env := newTestEnv(t)
	_, teacherToken := env.user(t, "Tara", "tara@example.com", models.RoleTeacher)
	_, otherToken := env.user(t, "Omar", "omar@example.com", models.RoleTeacher)
	_, adminToken := env.user(t, "Ada", "ada@example.com", models.RoleAdmin)

	proposal := map[string]interface{}{
		"title":       "Concurrency in Go",
		"price":       49.5,
		"description": "Goroutines, channels and the memory model",
	}
	status, envelope := env.do(t, http.MethodPost, "/api/v1/classes", teacherToken, proposal)
	require.Equal(t, http.StatusCreated, status)

	var class dto.ClassResponse
	decodeData(t, envelope, &class)
	require.Equal(t, models.StatusPending, class.Status)
	require.Equal(t, "tara@example.com", class.Email)

	path := fmt.Sprintf("/api/v1/classes/%d", class.ID)

	status, _ = env.do(t, http.MethodPut, path, otherToken, map[string]interface{}{"price": 10})
	require.Equal(t, http.StatusForbidden, status)

	status, envelope = env.do(t, http.MethodPut, path, teacherToken, map[string]interface{}{"price": 39})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &class)
	require.Equal(t, 39.0, class.Price)

	status, _ = env.do(t, http.MethodPatch, path, teacherToken, map[string]string{"status": "Accepted"})
	require.Equal(t, http.StatusForbidden, status)

	status, envelope = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &class)
	require.Equal(t, models.StatusAccepted, class.Status)

	status, envelope = env.do(t, http.MethodGet, "/api/v1/classes/mine", teacherToken, nil)
	require.Equal(t, http.StatusOK, status)
	var mine []dto.ClassResponse
	decodeData(t, envelope, &mine)
	require.Len(t, mine, 1)

	status, _ = env.do(t, http.MethodGet, "/api/v1/classes/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodDelete, path, otherToken, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, status)
}
