package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/models"
)

func TestUserRepositoryListPagesInStoredOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for i := 1; i <= 12; i++ {
		seedUser(t, db, fmt.Sprintf("user%02d@example.com", i), models.RoleStudent)
	}

	users, total, err := repo.List(context.Background(), UserFilter{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, users, 5)
	for i, user := range users {
		require.Equal(t, fmt.Sprintf("user%02d@example.com", i+6), user.Email)
	}

	users, _, err = repo.List(context.Background(), UserFilter{Page: 3, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, total, err = repo.List(context.Background(), UserFilter{Page: 1 << 60, PageSize: 100})
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Empty(t, users)
}

func TestUserRepositorySearchIsCaseInsensitiveOnEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "alice@skillpath.io", models.RoleStudent)
	seedUser(t, db, "bob@example.com", models.RoleTeacher)

	users, total, err := repo.List(context.Background(), UserFilter{Search: "SKILLPATH", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "alice@skillpath.io", users[0].Email)
}

func TestUserRepositorySearchMatchesWildcardsLiterally(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "alice@skillpath.io", models.RoleStudent)
	seedUser(t, db, "bob_smith@example.com", models.RoleStudent)
	seedUser(t, db, "100%dev@example.com", models.RoleTeacher)
	seedUser(t, db, `back\slash@example.com`, models.RoleStudent)

	cases := map[string][]string{
		"_":     {"bob_smith@example.com"},
		"%":     {"100%dev@example.com"},
		"a_i":   nil,
		"b_s":   {"bob_smith@example.com"},
		`\`:    {`back\slash@example.com`},
		"0%d":   {"100%dev@example.com"},
		"smith": {"bob_smith@example.com"},
	}
	for search, want := range cases {
		users, total, err := repo.List(context.Background(), UserFilter{Search: search, PageSize: 10})
		require.NoError(t, err, search)
		require.Equal(t, int64(len(want)), total, search)

		emails := make([]string, 0, len(users))
		for _, user := range users {
			emails = append(emails, user.Email)
		}
		require.ElementsMatch(t, want, emails, search)
	}
}

func TestUserRepositoryNormalisesEmailAndUpdatesRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := models.User{Name: "Carol", Email: "  Carol@Example.com ", Role: models.RoleStudent}
	require.NoError(t, repo.Create(context.Background(), &user))

	found, err := repo.GetByEmail(context.Background(), "CAROL@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	updated, err := repo.UpdateRole(context.Background(), user.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, updated.Role)

	_, err = repo.UpdateRole(context.Background(), 999, models.RoleAdmin)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(context.Background(), user.ID))
	require.ErrorIs(t, repo.Delete(context.Background(), user.ID), gorm.ErrRecordNotFound)
}
