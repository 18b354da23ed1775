package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

const (
	DefaultSummaryDays = 7
	MaxSummaryDays     = 365
)

// StudyService handles a student's study log.
type StudyService struct {
	repo *repository.StudySessionRepository
	now  func() time.Time
}

// NewStudyService creates a new StudyService.
func NewStudyService(repo *repository.StudySessionRepository) *StudyService {
	return &StudyService{repo: repo, now: time.Now}
}

// Create logs a study session for the student.
func (s *StudyService) Create(ctx context.Context, studentID int, req model.CreateStudySessionRequest) (*model.StudySession, error) {
	date, err := time.Parse(model.DateLayout, req.StudyDate)
	if err != nil {
		return nil, scoring.FieldErrors{"study_date": "Tarih YYYY-AA-GG biçiminde olmalıdır"}
	}
	if date.After(s.now()) {
		return nil, scoring.FieldErrors{"study_date": "Gelecek bir tarih girilemez"}
	}

	session := &model.StudySession{
		StudentID:       studentID,
		Subject:         strings.TrimSpace(req.Subject),
		DurationMinutes: req.DurationMinutes,
		StudyDate:       date,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// List retrieves the student's study sessions, newest first.
func (s *StudyService) List(ctx context.Context, studentID, page, perPage int) ([]model.StudySession, *response.Pagination, error) {
	page, perPage = normalizePage(page, perPage)
	sessions, total, err := s.repo.ListPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return sessions, response.NewPagination(page, perPage, total), nil
}

// Delete removes one of the student's study sessions.
func (s *StudyService) Delete(ctx context.Context, studentID, id int) error {
	return s.repo.Delete(ctx, studentID, id)
}

// Summary aggregates the last `days` days of study time per subject,
// today included.
func (s *StudyService) Summary(ctx context.Context, studentID, days int) (*model.StudySummary, error) {
	days = clampDays(days)
	since := summaryStart(s.now(), days)

	subjects, err := s.repo.SummarySince(ctx, studentID, since)
	if err != nil {
		return nil, err
	}
	return buildSummary(days, subjects), nil
}

func clampDays(days int) int {
	if days < 1 {
		return DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		return MaxSummaryDays
	}
	return days
}

func summaryStart(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

func buildSummary(days int, subjects []model.StudySubjectSummary) *model.StudySummary {
	summary := &model.StudySummary{Days: days, Subjects: subjects}
	for i := range summary.Subjects {
		sub := &summary.Subjects[i]
		sub.Hours = math.Round(float64(sub.TotalMinutes)/60*10) / 10
		summary.TotalMinutes += sub.TotalMinutes
	}
	if summary.Subjects == nil {
		summary.Subjects = []model.StudySubjectSummary{}
	}
	return summary
}
