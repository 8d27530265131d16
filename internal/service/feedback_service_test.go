package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

func TestFeedbackServiceSanitisesAndLists(t *testing.T) {
	db := newTestDB(t)
	classes := repository.NewClassRepository(db)
	svc := NewFeedbackService(repository.NewFeedbackRepository(db), classes, newValidator(), zerolog.Nop())

	teacher := createUser(t, db, "Tia", "tia@example.com", models.RoleTeacher)
	student := createUser(t, db, "Stu", "stu@example.com", models.RoleStudent)
	class := createClass(t, db, teacher, "Baking", models.StatusAccepted)

	created, err := svc.Create(context.Background(), student, dto.FeedbackCreateRequest{
		ClassID:     class.ID,
		Rating:      5,
		Description: "<script>alert(1)</script>Great <b>class</b>",
	})
	require.NoError(t, err)
	require.Equal(t, "Great class", created.Description)
	require.Equal(t, "Baking", created.ClassTitle)
	require.Equal(t, "Stu", created.StudentName)

	_, err = svc.Create(context.Background(), student, dto.FeedbackCreateRequest{ClassID: class.ID, Rating: 4, Description: "<script>x</script>"})
	require.ErrorIs(t, err, ErrEmptyFeedback)

	_, err = svc.Create(context.Background(), student, dto.FeedbackCreateRequest{ClassID: class.ID, Rating: 6, Description: "too good"})
	require.Error(t, err)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1)

	missing := uint(999)
	_, err = svc.List(context.Background(), &missing)
	require.ErrorIs(t, err, ErrClassNotFound)
}
