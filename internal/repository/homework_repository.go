package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// HomeworkRepository handles homework and completion data access.
type HomeworkRepository struct {
	pool *pgxpool.Pool
}

// NewHomeworkRepository creates a new HomeworkRepository.
func NewHomeworkRepository(pool *pgxpool.Pool) *HomeworkRepository {
	return &HomeworkRepository{pool: pool}
}

const homeworkColumns = `h.id, h.class_id, h.teacher_id, h.title, h.description, h.subject, h.due_date, h.created_at`

// Create inserts a new homework item.
func (r *HomeworkRepository) Create(ctx context.Context, h *model.Homework) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO homeworks (class_id, teacher_id, title, description, subject, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		h.ClassID, h.TeacherID, h.Title, h.Description, h.Subject, h.DueDate,
	).Scan(&h.ID, &h.CreatedAt)
	return translate(err)
}

// GetByID retrieves a homework item.
func (r *HomeworkRepository) GetByID(ctx context.Context, id int) (*model.Homework, error) {
	h := &model.Homework{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+homeworkColumns+` FROM homeworks h WHERE h.id = $1`, id,
	).Scan(&h.ID, &h.ClassID, &h.TeacherID, &h.Title, &h.Description, &h.Subject, &h.DueDate, &h.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return h, nil
}

// ListByTeacher returns the homework a teacher assigned, optionally for one class.
func (r *HomeworkRepository) ListByTeacher(ctx context.Context, teacherID int, classID *int) ([]model.Homework, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+homeworkColumns+` FROM homeworks h
		 WHERE h.teacher_id = $1 AND ($2::int IS NULL OR h.class_id = $2)
		 ORDER BY h.created_at DESC`,
		teacherID, classID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Homework{}
	for rows.Next() {
		var h model.Homework
		if err := rows.Scan(&h.ID, &h.ClassID, &h.TeacherID, &h.Title, &h.Description, &h.Subject, &h.DueDate, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

// ListForStudent returns the homework of the student's class with completion state.
func (r *HomeworkRepository) ListForStudent(ctx context.Context, studentID, classID int) ([]model.StudentHomework, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+homeworkColumns+`, hc.completed_at
		 FROM homeworks h
		 LEFT JOIN homework_completions hc ON hc.homework_id = h.id AND hc.student_id = $1
		 WHERE h.class_id = $2
		 ORDER BY h.due_date ASC NULLS LAST, h.created_at DESC`,
		studentID, classID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.StudentHomework{}
	for rows.Next() {
		var h model.StudentHomework
		if err := rows.Scan(&h.ID, &h.ClassID, &h.TeacherID, &h.Title, &h.Description, &h.Subject, &h.DueDate, &h.CreatedAt, &h.CompletedAt); err != nil {
			return nil, err
		}
		h.Completed = h.CompletedAt != nil
		items = append(items, h)
	}
	return items, rows.Err()
}

// Complete records that a student finished a homework item. Returns
// ErrDuplicate when it was already completed.
func (r *HomeworkRepository) Complete(ctx context.Context, homeworkID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO homework_completions (homework_id, student_id) VALUES ($1, $2)`,
		homeworkID, studentID)
	return translate(err)
}

// Completions lists the students who completed a homework item.
func (r *HomeworkRepository) Completions(ctx context.Context, homeworkID int) ([]model.HomeworkCompletion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.student_number, s.name, hc.completed_at
		 FROM homework_completions hc
		 JOIN students s ON s.id = hc.student_id
		 WHERE hc.homework_id = $1
		 ORDER BY hc.completed_at`,
		homeworkID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.HomeworkCompletion{}
	for rows.Next() {
		var c model.HomeworkCompletion
		if err := rows.Scan(&c.StudentID, &c.StudentNumber, &c.StudentName, &c.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a homework item.
func (r *HomeworkRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM homeworks WHERE id = $1`, id))
}
