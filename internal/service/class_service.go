package service

import (
	"context"
	"strings"

	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
)

// ClassService handles class business logic. Teachers only see and edit
// the classes they own unless they hold classes:all.
type ClassService struct {
	classRepo *repository.ClassRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// Get retrieves a class the viewer may manage.
func (s *ClassService) Get(ctx context.Context, v Viewer, id int) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.CanManageClass(class.TeacherID) {
		return nil, ErrForbidden
	}
	return class, nil
}

// List retrieves the viewer's classes.
func (s *ClassService) List(ctx context.Context, v Viewer) ([]model.Class, error) {
	return s.classRepo.ListByTeacher(ctx, v.TeacherScope())
}

// Create creates a class owned by the viewer.
func (s *ClassService) Create(ctx context.Context, v Viewer, req model.ClassRequest) (*model.Class, error) {
	if !v.IsTeacher() {
		return nil, ErrForbidden
	}
	class := &model.Class{
		Name:       strings.TrimSpace(req.Name),
		GradeLevel: req.GradeLevel,
		Section:    strings.ToUpper(strings.TrimSpace(req.Section)),
		TeacherID:  v.UserID,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Update modifies a class the viewer may manage.
func (s *ClassService) Update(ctx context.Context, v Viewer, id int, req model.ClassRequest) (*model.Class, error) {
	class, err := s.Get(ctx, v, id)
	if err != nil {
		return nil, err
	}
	class.Name = strings.TrimSpace(req.Name)
	class.GradeLevel = req.GradeLevel
	class.Section = strings.ToUpper(strings.TrimSpace(req.Section))
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return s.classRepo.GetByID(ctx, id)
}

// Delete removes a class. The students table's foreign key rejects the
// delete while students are still enrolled.
func (s *ClassService) Delete(ctx context.Context, v Viewer, id int) error {
	if _, err := s.Get(ctx, v, id); err != nil {
		return err
	}
	return s.classRepo.Delete(ctx, id)
}
