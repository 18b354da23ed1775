package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
)

// TeacherService handles teacher accounts.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository, authService *AuthService, log zerolog.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		authService: authService,
		log:         logger.Component(log, "teacher_service"),
	}
}

// GetByID retrieves a teacher by ID.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// Login checks a teacher's credentials and issues a token.
func (s *TeacherService) Login(ctx context.Context, email, password string) (*model.TeacherLoginResponse, error) {
	teacher, err := s.teacherRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.authService.CheckPassword(teacher.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.authService.GenerateTeacherToken(teacher.ID, teacher.Role)
	if err != nil {
		return nil, err
	}

	return &model.TeacherLoginResponse{
		Token:       token,
		Teacher:     *teacher,
		Permissions: teacher.Role.Permissions(),
	}, nil
}

// List retrieves every teacher account.
func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teacherRepo.List(ctx)
}

// Create hashes the password and stores a new teacher.
func (s *TeacherService) Create(ctx context.Context, req model.CreateTeacherRequest) (*model.Teacher, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}
	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	teacher := &model.Teacher{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.log.Info().Int("teacher_id", teacher.ID).Str("role", string(teacher.Role)).Msg("teacher created")
	return teacher, nil
}
