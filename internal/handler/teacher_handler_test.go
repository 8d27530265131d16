package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
)

func TestTeacherApplicationApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	applicant, applicantToken := env.user(t, "Kai", "kai@example.com", models.RoleStudent)
	_, adminToken := env.user(t, "Ada", "ada@example.com", models.RoleAdmin)

	request := map[string]string{
		"name":       "Kai",
		"title":      "Mobile development",
		"category":   "programming",
		"experience": "experienced",
	}
	status, envelope := env.do(t, http.MethodPost, "/api/v1/teachers", applicantToken, request)
	require.Equal(t, http.StatusCreated, status)

	var application dto.TeacherApplicationResponse
	decodeData(t, envelope, &application)
	require.Equal(t, models.StatusPending, application.Status)
	require.Equal(t, applicant.ID, application.UserID)

	status, _ = env.do(t, http.MethodPost, "/api/v1/teachers", applicantToken, request)
	require.Equal(t, http.StatusConflict, status)

	path := fmt.Sprintf("/api/v1/teachers/%d", application.ID)

	status, _ = env.do(t, http.MethodPatch, path, applicantToken, map[string]string{"status": "Accepted"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "Maybe"})
	require.Equal(t, http.StatusBadRequest, status)

	status, envelope = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "Accepted", "email": "kai@example.com"})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &application)
	require.Equal(t, models.StatusAccepted, application.Status)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, applicant.ID).Error)
	require.Equal(t, models.RoleTeacher, reloaded.Role)

	status, _ = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "Rejected"})
	require.Equal(t, http.StatusConflict, status)

	status, envelope = env.do(t, http.MethodGet, "/api/v1/teachers/kai@example.com", applicantToken, nil)
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &application)
	require.Equal(t, models.StatusAccepted, application.Status)
}
