package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
)

func TestUserRoutesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, studentToken := env.user(t, "Stan", "stan@example.com", models.RoleStudent)
	_, adminToken := env.user(t, "Ada", "ada@example.com", models.RoleAdmin)

	status, _ := env.do(t, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, envelope := env.do(t, http.MethodGet, "/api/v1/users", studentToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.False(t, envelope.Success)

	status, envelope = env.do(t, http.MethodGet, "/api/v1/users?search=ADA", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var users []dto.UserResponse
	decodeData(t, envelope, &users)
	require.Len(t, users, 1)
	require.Equal(t, "ada@example.com", users[0].Email)
}

func TestUserListPagination(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.user(t, "Admin", "admin@example.com", models.RoleAdmin)
	for i := 2; i <= 12; i++ {
		env.user(t, "User", fmt.Sprintf("user%02d@example.com", i), models.RoleStudent)
	}

	status, envelope := env.do(t, http.MethodGet, "/api/v1/users?page=2&perPage=5", adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	var users []dto.UserResponse
	decodeData(t, envelope, &users)
	require.Len(t, users, 5)
	for i, user := range users {
		require.Equal(t, uint(6+i), user.ID)
	}

	meta, ok := envelope.Meta.(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 12, meta["totalItems"])
	require.EqualValues(t, 3, meta["totalPages"])

	status, envelope = env.do(t, http.MethodGet, "/api/v1/users?currentPage=abc&itemsPerPage=-3", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &users)
	require.Len(t, users, 10)
}

func TestSignupAndAdminRoleChange(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.user(t, "Ada", "ada@example.com", models.RoleAdmin)

	signup := map[string]string{"name": "Nia", "email": "nia@example.com", "role": "Admin"}
	status, envelope := env.do(t, http.MethodPost, "/api/v1/users", "", signup)
	require.Equal(t, http.StatusCreated, status)

	var created dto.UserResponse
	decodeData(t, envelope, &created)
	require.Equal(t, models.RoleStudent, created.Role)

	status, _ = env.do(t, http.MethodPost, "/api/v1/users", "", signup)
	require.Equal(t, http.StatusConflict, status)

	path := fmt.Sprintf("/api/v1/users/%d", created.ID)
	status, envelope = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"role": "Teacher"})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, envelope, &created)
	require.Equal(t, models.RoleTeacher, created.Role)

	status, _ = env.do(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestSignupValidationFailureListsFields(t *testing.T) {
	env := newTestEnv(t)

	status, envelope := env.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{"name": "Nia", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, envelope.Success)
	require.Equal(t, "validation failed", envelope.Message)

	details, ok := envelope.Details.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "email", details["email"])
	require.NotContains(t, details, "name")
}
