package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// ExamResultRepository handles exam result data access.
type ExamResultRepository struct {
	pool *pgxpool.Pool
}

// NewExamResultRepository creates a new ExamResultRepository.
func NewExamResultRepository(pool *pgxpool.Pool) *ExamResultRepository {
	return &ExamResultRepository{pool: pool}
}

const examResultColumns = `id, student_id, exam_type, exam_name, exam_date, total_score::float8, details, created_at, updated_at`

func scanExamResult(row interface{ Scan(...interface{}) error }) (*model.ExamResult, error) {
	e := &model.ExamResult{}
	var details []byte
	err := row.Scan(&e.ID, &e.StudentID, &e.ExamType, &e.ExamName, &e.ExamDate, &e.TotalScore, &details, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	e.Details = details
	return e, nil
}

// Create inserts a new exam result. The caller assigns the ID.
func (r *ExamResultRepository) Create(ctx context.Context, e *model.ExamResult) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_results (id, student_id, exam_type, exam_name, exam_date, total_score, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		e.ID, e.StudentID, e.ExamType, e.ExamName, e.ExamDate, e.TotalScore, []byte(e.Details),
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return translate(err)
}

// GetForStudent retrieves one exam result belonging to a student.
func (r *ExamResultRepository) GetForStudent(ctx context.Context, studentID int, id uuid.UUID) (*model.ExamResult, error) {
	return scanExamResult(r.pool.QueryRow(ctx,
		`SELECT `+examResultColumns+` FROM exam_results WHERE id = $1 AND student_id = $2`,
		id, studentID))
}

// ListPaginated returns a student's exam results, newest exam date first.
func (r *ExamResultRepository) ListPaginated(ctx context.Context, studentID int, examType string, limit, offset int) ([]model.ExamResult, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_results WHERE student_id = $1 AND ($2 = '' OR exam_type = $2)`,
		studentID, examType,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+examResultColumns+` FROM exam_results
		 WHERE student_id = $1 AND ($2 = '' OR exam_type = $2)
		 ORDER BY exam_date DESC, created_at DESC
		 LIMIT $3 OFFSET $4`,
		studentID, examType, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results := []model.ExamResult{}
	for rows.Next() {
		e, err := scanExamResult(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *e)
	}
	return results, total, rows.Err()
}

// History returns up to limit of a student's most recent exam results,
// newest first. This is the analyzer's input.
func (r *ExamResultRepository) History(ctx context.Context, studentID, limit int) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examResultColumns+` FROM exam_results
		 WHERE student_id = $1
		 ORDER BY exam_date DESC, created_at DESC
		 LIMIT $2`,
		studentID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.ExamResult{}
	for rows.Next() {
		e, err := scanExamResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	return results, rows.Err()
}

// Update rewrites an exam result's fields and recomputed score.
func (r *ExamResultRepository) Update(ctx context.Context, e *model.ExamResult) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE exam_results
		 SET exam_type = $1, exam_name = $2, exam_date = $3, total_score = $4, details = $5, updated_at = NOW()
		 WHERE id = $6 AND student_id = $7
		 RETURNING created_at, updated_at`,
		e.ExamType, e.ExamName, e.ExamDate, e.TotalScore, []byte(e.Details), e.ID, e.StudentID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return translate(err)
}

// Delete removes a student's exam result.
func (r *ExamResultRepository) Delete(ctx context.Context, studentID int, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx,
		`DELETE FROM exam_results WHERE id = $1 AND student_id = $2`, id, studentID))
}
