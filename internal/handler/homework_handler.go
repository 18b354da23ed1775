package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

// HomeworkHandler handles homework for teachers and students.
type HomeworkHandler struct {
	homeworkService *service.HomeworkService
}

// NewHomeworkHandler creates a new HomeworkHandler.
func NewHomeworkHandler(homeworkService *service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkService: homeworkService}
}

// CreateHomework godoc
// POST /api/v1/teacher/homework
func (h *HomeworkHandler) CreateHomework(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var req model.CreateHomeworkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	hw, err := h.homeworkService.Create(c.Request.Context(), v, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"homework": hw})
}

// ListTeacherHomework godoc
// GET /api/v1/teacher/homework?class_id=
func (h *HomeworkHandler) ListTeacherHomework(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	classID, ok := optionalIntQuery(c, "class_id")
	if !ok {
		return
	}

	items, err := h.homeworkService.ListForTeacher(c.Request.Context(), v, classID)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"homework": items})
}

// GetCompletions godoc
// GET /api/v1/teacher/homework/:id/completions
func (h *HomeworkHandler) GetCompletions(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	completions, err := h.homeworkService.Completions(c.Request.Context(), v, id)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"completions": completions})
}

// DeleteHomework godoc
// DELETE /api/v1/teacher/homework/:id
func (h *HomeworkHandler) DeleteHomework(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.homeworkService.Delete(c.Request.Context(), v, id); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Homework deleted"})
}

// ListStudentHomework godoc
// GET /api/v1/student/homework and GET /api/v1/parent/homework
// Lists the class homework with the student's completion state.
func (h *HomeworkHandler) ListStudentHomework(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	items, err := h.homeworkService.ListForStudent(c.Request.Context(), v)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"homework": items})
}

// CompleteHomework godoc
// POST /api/v1/student/homework/:id/complete
func (h *HomeworkHandler) CompleteHomework(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.homeworkService.Complete(c.Request.Context(), v, id); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Homework completed"})
}
