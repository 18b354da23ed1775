package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// TeacherRepository handles teacher account data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `id, email, name, password_hash, role, created_at, updated_at`

func scanTeacher(row interface{ Scan(...interface{}) error }) (*model.Teacher, error) {
	t := &model.Teacher{}
	if err := row.Scan(&t.ID, &t.Email, &t.Name, &t.PasswordHash, &t.Role, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id))
}

// GetByEmail retrieves a teacher by their unique email.
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE LOWER(email) = LOWER($1)`, email))
}

// List retrieves every teacher ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, *t)
	}
	return teachers, rows.Err()
}

// Create inserts a new teacher.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO teachers (email, name, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.Email, t.Name, t.PasswordHash, t.Role,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return translate(err)
}

// UpdatePassword replaces a teacher's password hash.
func (r *TeacherRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE teachers SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id))
}
