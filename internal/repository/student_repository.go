package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, student_number, name, class_id, target_exam, password_hash, parent_pin_hash, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.StudentNumber, &s.Name, &s.ClassID, &s.TargetExam,
		&s.PasswordHash, &s.ParentPINHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetByNumber retrieves a student by their unique student number.
func (r *StudentRepository) GetByNumber(ctx context.Context, number string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_number = $1`, number))
}

// ListPaginated retrieves students with pagination, optionally limited to one
// class or to the classes of one teacher.
func (r *StudentRepository) ListPaginated(ctx context.Context, classID, teacherID *int, limit, offset int) ([]model.Student, int, error) {
	where := ``
	var args []interface{}
	if classID != nil {
		args = append(args, *classID)
		where += ` AND class_id = $` + strconv.Itoa(len(args))
	}
	if teacherID != nil {
		args = append(args, *teacherID)
		where += ` AND class_id IN (SELECT id FROM classes WHERE teacher_id = $` + strconv.Itoa(len(args)) + `)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE TRUE`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE TRUE` + where +
		` ORDER BY name LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

// ListIDsByClass returns the IDs of every student in a class.
func (r *StudentRepository) ListIDsByClass(ctx context.Context, classID int) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM students WHERE class_id = $1 ORDER BY id`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TeacherOf returns the ID of the teacher owning the student's class.
func (r *StudentRepository) TeacherOf(ctx context.Context, studentID int) (int, error) {
	var teacherID int
	err := r.pool.QueryRow(ctx,
		`SELECT c.teacher_id FROM students s JOIN classes c ON c.id = s.class_id WHERE s.id = $1`,
		studentID,
	).Scan(&teacherID)
	return teacherID, translate(err)
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (student_number, name, class_id, target_exam, password_hash, parent_pin_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.StudentNumber, s.Name, s.ClassID, s.TargetExam, s.PasswordHash, s.ParentPINHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

// Update modifies a student's profile and credential hashes.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE students
		 SET student_number = $1, name = $2, class_id = $3, target_exam = $4,
		     password_hash = $5, parent_pin_hash = $6, updated_at = NOW()
		 WHERE id = $7`,
		s.StudentNumber, s.Name, s.ClassID, s.TargetExam, s.PasswordHash, s.ParentPINHash, s.ID,
	))
}

// Delete removes a student by ID along with their exam history.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id))
}
