package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classSelect = `
	SELECT c.id, c.name, c.grade_level, c.section, c.teacher_id,
	       (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id),
	       c.created_at, c.updated_at
	FROM classes c`

func scanClass(row interface{ Scan(...interface{}) error }) (*model.Class, error) {
	c := &model.Class{}
	err := row.Scan(&c.ID, &c.Name, &c.GradeLevel, &c.Section, &c.TeacherID, &c.StudentCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx, classSelect+` WHERE c.id = $1`, id))
}

// ListByTeacher retrieves the classes owned by a teacher. A nil teacherID lists all classes.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID *int) ([]model.Class, error) {
	query := classSelect
	var args []interface{}
	if teacherID != nil {
		query += ` WHERE c.teacher_id = $1`
		args = append(args, *teacherID)
	}
	query += ` ORDER BY c.grade_level, c.section`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, grade_level, section, teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.GradeLevel, c.Section, c.TeacherID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, grade_level = $2, section = $3, updated_at = NOW()
		 WHERE id = $4`,
		c.Name, c.GradeLevel, c.Section, c.ID,
	))
}

// Delete removes a class by its ID. Fails with ErrStillReferenced while students are enrolled.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id))
}
