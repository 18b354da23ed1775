package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

// ErrHomeworkCompleted is returned when a student completes the same homework twice.
var ErrHomeworkCompleted = errors.New("homework already completed")

// HomeworkService handles class homework and completions.
type HomeworkService struct {
	repo         *repository.HomeworkRepository
	classService *ClassService
	log          zerolog.Logger
}

// NewHomeworkService creates a new HomeworkService.
func NewHomeworkService(repo *repository.HomeworkRepository, classService *ClassService, log zerolog.Logger) *HomeworkService {
	return &HomeworkService{
		repo:         repo,
		classService: classService,
		log:          logger.Component(log, "homework_service"),
	}
}

// Create assigns homework to one of the viewer's classes.
func (s *HomeworkService) Create(ctx context.Context, v Viewer, req model.CreateHomeworkRequest) (*model.Homework, error) {
	if _, err := s.classService.Get(ctx, v, req.ClassID); err != nil {
		return nil, err
	}

	hw := &model.Homework{
		ClassID:     req.ClassID,
		TeacherID:   v.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Subject:     strings.TrimSpace(req.Subject),
	}
	if req.DueDate != "" {
		due, err := time.Parse(model.DateLayout, req.DueDate)
		if err != nil {
			return nil, scoring.FieldErrors{"due_date": "Tarih YYYY-AA-GG biçiminde olmalıdır"}
		}
		hw.DueDate = &due
	}

	if err := s.repo.Create(ctx, hw); err != nil {
		return nil, err
	}
	s.log.Info().Int("homework_id", hw.ID).Int("class_id", hw.ClassID).Msg("homework assigned")
	return hw, nil
}

// ListForTeacher lists the homework the viewer assigned.
func (s *HomeworkService) ListForTeacher(ctx context.Context, v Viewer, classID *int) ([]model.Homework, error) {
	if !v.IsTeacher() {
		return nil, ErrForbidden
	}
	return s.repo.ListByTeacher(ctx, v.UserID, classID)
}

// ListForStudent lists the homework of the student's class with completion state.
func (s *HomeworkService) ListForStudent(ctx context.Context, v Viewer) ([]model.StudentHomework, error) {
	studentID, ok := v.OwnStudentID()
	if !ok {
		return nil, ErrForbidden
	}
	return s.repo.ListForStudent(ctx, studentID, v.ClassID)
}

// Complete marks a homework item of the student's own class as done.
func (s *HomeworkService) Complete(ctx context.Context, v Viewer, homeworkID int) error {
	if v.Kind != TokenTypeStudent {
		return ErrForbidden
	}
	hw, err := s.repo.GetByID(ctx, homeworkID)
	if err != nil {
		return err
	}
	if hw.ClassID != v.ClassID {
		return repository.ErrNotFound
	}

	err = s.repo.Complete(ctx, homeworkID, v.UserID)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrHomeworkCompleted
	}
	return err
}

// Completions lists who completed a homework item of the viewer's class.
func (s *HomeworkService) Completions(ctx context.Context, v Viewer, homeworkID int) ([]model.HomeworkCompletion, error) {
	if _, err := s.authorize(ctx, v, homeworkID); err != nil {
		return nil, err
	}
	return s.repo.Completions(ctx, homeworkID)
}

// Delete removes a homework item of the viewer's class.
func (s *HomeworkService) Delete(ctx context.Context, v Viewer, homeworkID int) error {
	if _, err := s.authorize(ctx, v, homeworkID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, homeworkID)
}

func (s *HomeworkService) authorize(ctx context.Context, v Viewer, homeworkID int) (*model.Homework, error) {
	hw, err := s.repo.GetByID(ctx, homeworkID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classService.Get(ctx, v, hw.ClassID); err != nil {
		return nil, err
	}
	return hw, nil
}
