package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// DashboardRepository handles teacher dashboard data access. A nil
// teacherID widens every query to the whole school.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, teacherID *int) (stats model.DashboardStats, err error) {
	err = r.pool.QueryRow(ctx,
		`WITH own AS (SELECT id FROM classes WHERE $1::int IS NULL OR teacher_id = $1)
		 SELECT
			(SELECT COUNT(*) FROM students WHERE class_id IN (SELECT id FROM own)),
			(SELECT COUNT(*) FROM own),
			(SELECT COUNT(*) FROM exam_results e JOIN students s ON s.id = e.student_id
			  WHERE s.class_id IN (SELECT id FROM own)),
			(SELECT COUNT(*) FROM homeworks WHERE class_id IN (SELECT id FROM own))`,
		teacherID,
	).Scan(&stats.TotalStudents, &stats.TotalClasses, &stats.TotalExamResults, &stats.TotalHomework)
	return
}

// GetAverageScores returns the mean total score per exam type.
func (r *DashboardRepository) GetAverageScores(ctx context.Context, teacherID *int) ([]model.ExamTypeAverage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.exam_type, COUNT(*)::int, ROUND(AVG(e.total_score), 2)::float8
		 FROM exam_results e
		 JOIN students s ON s.id = e.student_id
		 JOIN classes c ON c.id = s.class_id
		 WHERE $1::int IS NULL OR c.teacher_id = $1
		 GROUP BY e.exam_type
		 ORDER BY e.exam_type`,
		teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := []model.ExamTypeAverage{}
	for rows.Next() {
		var a model.ExamTypeAverage
		if err := rows.Scan(&a.ExamType, &a.Results, &a.AverageScore); err != nil {
			return nil, err
		}
		averages = append(averages, a)
	}
	return averages, rows.Err()
}

// GetRecentResults retrieves the last N recorded exam results.
func (r *DashboardRepository) GetRecentResults(ctx context.Context, teacherID *int, limit int) ([]model.RecentExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, s.id, s.name, c.name, e.exam_type, e.exam_name, e.exam_date, e.total_score::float8
		 FROM exam_results e
		 JOIN students s ON s.id = e.student_id
		 JOIN classes c ON c.id = s.class_id
		 WHERE $1::int IS NULL OR c.teacher_id = $1
		 ORDER BY e.created_at DESC
		 LIMIT $2`,
		teacherID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.RecentExamResult{}
	for rows.Next() {
		var res model.RecentExamResult
		if err := rows.Scan(&res.ID, &res.StudentID, &res.StudentName, &res.ClassName,
			&res.ExamType, &res.ExamName, &res.ExamDate, &res.TotalScore); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
