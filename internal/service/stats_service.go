package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/repository"
)

// PopularLimit is the number of classes returned by the landing page highlight.
const PopularLimit = 6

// StatsService computes the public and teacher-facing aggregates.
type StatsService interface {
	Impact(ctx context.Context) (dto.ImpactResponse, error)
	Popular(ctx context.Context) ([]dto.PopularClassResponse, error)
	PopularClasses(ctx context.Context) ([]dto.PopularClassResponse, error)
	ClassInfo(ctx context.Context, actor models.User, classID uint) (dto.ClassInfoResponse, error)
}

type statsService struct {
	stats       repository.StatsRepository
	classes     repository.ClassRepository
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStatsService builds the aggregate service.
func NewStatsService(stats repository.StatsRepository, classes repository.ClassRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) StatsService {
	return &statsService{
		stats:       stats,
		classes:     classes,
		submissions: submissions,
		logger:      logger.With().Str("component", "stats_service").Logger(),
		now:         time.Now,
	}
}

func (s *statsService) Impact(ctx context.Context) (dto.ImpactResponse, error) {
	users, err := s.stats.ListUsers(ctx)
	if err != nil {
		return dto.ImpactResponse{}, err
	}
	classes, err := s.stats.ListPublishedClasses(ctx)
	if err != nil {
		return dto.ImpactResponse{}, err
	}
	payments, err := s.stats.ListPayments(ctx)
	if err != nil {
		return dto.ImpactResponse{}, err
	}

	response := dto.ImpactResponse{
		TotalUsers:       int64(len(users)),
		TotalClasses:     int64(len(classes)),
		TotalEnrollments: int64(len(payments)),
		GeneratedAt:      s.now().UTC(),
	}
	for _, user := range users {
		switch user.Role {
		case models.RoleStudent:
			response.TotalStudents++
		case models.RoleTeacher:
			response.TotalTeachers++
		}
	}

	return response, nil
}

func (s *statsService) Popular(ctx context.Context) ([]dto.PopularClassResponse, error) {
	ranked, err := s.rank(ctx)
	if err != nil {
		return nil, err
	}
	if len(ranked) > PopularLimit {
		ranked = ranked[:PopularLimit]
	}
	return ranked, nil
}

func (s *statsService) PopularClasses(ctx context.Context) ([]dto.PopularClassResponse, error) {
	return s.rank(ctx)
}

// rank orders published classes by enrollment count, breaking ties by id.
func (s *statsService) rank(ctx context.Context) ([]dto.PopularClassResponse, error) {
	classes, err := s.stats.ListPublishedClasses(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.stats.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(classes))
	for _, payment := range payments {
		counts[payment.ClassID]++
	}

	ranked := make([]dto.PopularClassResponse, 0, len(classes))
	for _, class := range classes {
		ranked = append(ranked, dto.PopularClassResponse{
			ClassResponse:    dto.NewClassResponse(class),
			TotalEnrollments: counts[class.ID],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalEnrollments != ranked[j].TotalEnrollments {
			return ranked[i].TotalEnrollments > ranked[j].TotalEnrollments
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked, nil
}

func (s *statsService) ClassInfo(ctx context.Context, actor models.User, classID uint) (dto.ClassInfoResponse, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassInfoResponse{}, ErrClassNotFound
		}
		return dto.ClassInfoResponse{}, err
	}
	if !actor.HasRole(models.RoleAdmin) && !class.IsOwnedBy(actor.ID) {
		return dto.ClassInfoResponse{}, ErrNotClassOwner
	}

	enrollments, err := s.stats.CountPaymentsForClass(ctx, classID)
	if err != nil {
		return dto.ClassInfoResponse{}, err
	}
	assignments, err := s.stats.CountAssignmentsForClass(ctx, classID)
	if err != nil {
		return dto.ClassInfoResponse{}, err
	}
	submissions, err := s.submissions.ListByClass(ctx, classID)
	if err != nil {
		return dto.ClassInfoResponse{}, err
	}

	return dto.ClassInfoResponse{
		Class:             dto.NewClassResponse(class),
		TotalEnrollments:  enrollments,
		TotalAssignments:  assignments,
		TotalSubmissions:  int64(len(submissions)),
		SubmissionsPerDay: submissionsPerDay(submissions),
	}, nil
}

func submissionsPerDay(submissions []models.Submission) []dto.DailySubmissionCount {
	counts := make(map[string]int64)
	for _, submission := range submissions {
		counts[submission.SubmittedAt.UTC().Format("2006-01-02")]++
	}

	days := make([]dto.DailySubmissionCount, 0, len(counts))
	for day, count := range counts {
		days = append(days, dto.DailySubmissionCount{Date: day, Submissions: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days
}
