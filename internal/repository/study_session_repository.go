package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// StudySessionRepository handles study session data access.
type StudySessionRepository struct {
	pool *pgxpool.Pool
}

// NewStudySessionRepository creates a new StudySessionRepository.
func NewStudySessionRepository(pool *pgxpool.Pool) *StudySessionRepository {
	return &StudySessionRepository{pool: pool}
}

// Create inserts a new study session.
func (r *StudySessionRepository) Create(ctx context.Context, s *model.StudySession) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO study_sessions (student_id, subject, duration_minutes, study_date, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.StudentID, s.Subject, s.DurationMinutes, s.StudyDate, s.Notes,
	).Scan(&s.ID, &s.CreatedAt)
	return translate(err)
}

// ListPaginated returns a student's study sessions, newest first.
func (r *StudySessionRepository) ListPaginated(ctx context.Context, studentID, limit, offset int) ([]model.StudySession, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM study_sessions WHERE student_id = $1`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, subject, duration_minutes, study_date, notes, created_at
		 FROM study_sessions WHERE student_id = $1
		 ORDER BY study_date DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		studentID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sessions := []model.StudySession{}
	for rows.Next() {
		var s model.StudySession
		if err := rows.Scan(&s.ID, &s.StudentID, &s.Subject, &s.DurationMinutes, &s.StudyDate, &s.Notes, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
	}
	return sessions, total, rows.Err()
}

// SummarySince aggregates minutes and session counts per subject from a date on.
func (r *StudySessionRepository) SummarySince(ctx context.Context, studentID int, since time.Time) ([]model.StudySubjectSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject, SUM(duration_minutes)::int, COUNT(*)::int
		 FROM study_sessions
		 WHERE student_id = $1 AND study_date >= $2
		 GROUP BY subject
		 ORDER BY SUM(duration_minutes) DESC, subject`,
		studentID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []model.StudySubjectSummary{}
	for rows.Next() {
		var s model.StudySubjectSummary
		if err := rows.Scan(&s.Subject, &s.TotalMinutes, &s.Sessions); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}

// Delete removes one of a student's study sessions.
func (r *StudySessionRepository) Delete(ctx context.Context, studentID, id int) error {
	return affected(r.pool.Exec(ctx,
		`DELETE FROM study_sessions WHERE id = $1 AND student_id = $2`, id, studentID))
}
