package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
)

// StudentService handles student accounts, logins and access checks.
type StudentService struct {
	studentRepo  *repository.StudentRepository
	classService *ClassService
	authService  *AuthService
	log          zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo *repository.StudentRepository,
	classService *ClassService,
	authService *AuthService,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:  studentRepo,
		classService: classService,
		authService:  authService,
		log:          logger.Component(log, "student_service"),
	}
}

// GetByID retrieves a student by ID without an access check.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// Authorize reports whether the viewer may read the student's data.
// Students and parents see only their own student; teachers see students
// in classes they manage.
func (s *StudentService) Authorize(ctx context.Context, v Viewer, studentID int) error {
	if own, ok := v.OwnStudentID(); ok {
		if own != studentID {
			return ErrForbidden
		}
		return nil
	}
	if !v.IsTeacher() {
		return ErrForbidden
	}
	if v.Can(model.PermissionAllClasses) {
		_, err := s.studentRepo.GetByID(ctx, studentID)
		return err
	}
	owner, err := s.studentRepo.TeacherOf(ctx, studentID)
	if err != nil {
		return err
	}
	if owner != v.UserID {
		return ErrForbidden
	}
	return nil
}

// Get retrieves a student the viewer may read.
func (s *StudentService) Get(ctx context.Context, v Viewer, id int) (*model.Student, error) {
	if err := s.Authorize(ctx, v, id); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// StudentLogin checks a student's password and opens their single-device session.
func (s *StudentService) StudentLogin(ctx context.Context, number, password string) (*model.LoginResponse, error) {
	student, err := s.studentRepo.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.authService.CheckPassword(student.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.authService.GenerateStudentToken(ctx, student.ID, student.ClassID)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Student: *student}, nil
}

// ParentLogin checks the parent PIN and issues a read-only parent token.
func (s *StudentService) ParentLogin(ctx context.Context, number, pin string) (*model.LoginResponse, error) {
	student, err := s.studentRepo.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if student.ParentPINHash == "" {
		return nil, ErrParentAccessDisabled
	}
	if err := s.authService.CheckPassword(student.ParentPINHash, pin); err != nil {
		return nil, err
	}

	token, err := s.authService.GenerateParentToken(student.ID, student.ClassID)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Student: *student}, nil
}

// List retrieves students visible to the viewer, optionally filtered by class.
func (s *StudentService) List(ctx context.Context, v Viewer, classID *int, page, perPage int) ([]model.Student, *response.Pagination, error) {
	page, perPage = normalizePage(page, perPage)

	if classID != nil {
		if _, err := s.classService.Get(ctx, v, *classID); err != nil {
			return nil, nil, err
		}
	}

	students, total, err := s.studentRepo.ListPaginated(ctx, classID, v.TeacherScope(), perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return students, response.NewPagination(page, perPage, total), nil
}

// Create enrols a student in one of the viewer's classes.
func (s *StudentService) Create(ctx context.Context, v Viewer, req model.CreateStudentRequest) (*model.Student, error) {
	if _, err := s.classService.Get(ctx, v, req.ClassID); err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		Name:          strings.TrimSpace(req.Name),
		ClassID:       req.ClassID,
		TargetExam:    req.TargetExam,
	}
	if err := s.setSecrets(student, req.Password, req.ParentPIN); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info().Int("student_id", student.ID).Int("class_id", student.ClassID).Msg("student created")
	return student, nil
}

// Update edits a student. Empty password or PIN keeps the stored hash.
func (s *StudentService) Update(ctx context.Context, v Viewer, id int, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if req.ClassID != student.ClassID {
		if _, err := s.classService.Get(ctx, v, req.ClassID); err != nil {
			return nil, err
		}
	}

	student.StudentNumber = strings.TrimSpace(req.StudentNumber)
	student.Name = strings.TrimSpace(req.Name)
	student.ClassID = req.ClassID
	student.TargetExam = req.TargetExam
	if err := s.setSecrets(student, req.Password, req.ParentPIN); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student and, through cascades, their history.
func (s *StudentService) Delete(ctx context.Context, v Viewer, id int) error {
	if err := s.Authorize(ctx, v, id); err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.authService.ResetStudentSession(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("student_id", id).Msg("failed to clear session of deleted student")
	}
	return nil
}

// ResetSession frees a student's single-device lock.
func (s *StudentService) ResetSession(ctx context.Context, v Viewer, id int) error {
	if err := s.Authorize(ctx, v, id); err != nil {
		return err
	}
	return s.authService.ResetStudentSession(ctx, id)
}

func (s *StudentService) setSecrets(student *model.Student, password, pin string) error {
	if password != "" {
		hash, err := s.authService.HashPassword(password)
		if err != nil {
			return err
		}
		student.PasswordHash = hash
	}
	if pin != "" {
		hash, err := s.authService.HashPassword(pin)
		if err != nil {
			return err
		}
		student.ParentPINHash = hash
	}
	if student.PasswordHash == "" {
		return errors.New("student password is required")
	}
	return nil
}

// normalizePage clamps pagination input to 1..100 items per page.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
