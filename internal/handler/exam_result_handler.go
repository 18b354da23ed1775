package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

// ExamResultHandler serves a student's recorded exams. Students write,
// parents and teachers read.
type ExamResultHandler struct {
	examService    *service.ExamResultService
	studentService *service.StudentService
}

// NewExamResultHandler creates a new ExamResultHandler.
func NewExamResultHandler(examService *service.ExamResultService, studentService *service.StudentService) *ExamResultHandler {
	return &ExamResultHandler{examService: examService, studentService: studentService}
}

// CreateExamResult godoc
// POST /api/v1/student/exams
// Scores the submitted form and stores the result.
func (h *ExamResultHandler) CreateExamResult(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var req model.ExamResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.Create(c.Request.Context(), v.UserID, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": result})
}

// ListOwnExamResults godoc
// GET /api/v1/student/exams and GET /api/v1/parent/exams
// Lists the token owner's exams, newest first. Optional ?exam_type filter.
func (h *ExamResultHandler) ListOwnExamResults(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, own := v.OwnStudentID()
	if !own {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}
	h.list(c, studentID)
}

// ListStudentExamResults godoc
// GET /api/v1/teacher/students/:id/exams
// Lists a student's exams for a teacher who manages the student's class.
func (h *ExamResultHandler) ListStudentExamResults(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.studentService.Authorize(c.Request.Context(), v, studentID); err != nil {
		failWith(c, err)
		return
	}
	h.list(c, studentID)
}

func (h *ExamResultHandler) list(c *gin.Context, studentID int) {
	examType := c.Query("exam_type")
	if examType != "" && !scoring.ExamType(examType).Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidExamType)
		return
	}

	page, perPage := pageQuery(c)
	results, pagination, err := h.examService.List(c.Request.Context(), studentID, examType, page, perPage)
	if err != nil {
		failWith(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": results}, pagination)
}

// GetExamResult godoc
// GET /api/v1/student/exams/:exam_id and GET /api/v1/parent/exams/:exam_id
func (h *ExamResultHandler) GetExamResult(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, own := v.OwnStudentID()
	if !own {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}
	id, ok := uuidParam(c, "exam_id")
	if !ok {
		return
	}

	result, err := h.examService.Get(c.Request.Context(), studentID, id)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": result})
}

// UpdateExamResult godoc
// PUT /api/v1/student/exams/:exam_id
// Re-scores an edited exam.
func (h *ExamResultHandler) UpdateExamResult(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "exam_id")
	if !ok {
		return
	}

	var req model.ExamResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.Update(c.Request.Context(), v.UserID, id, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": result})
}

// DeleteExamResult godoc
// DELETE /api/v1/student/exams/:exam_id
func (h *ExamResultHandler) DeleteExamResult(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "exam_id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), v.UserID, id); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Exam result deleted"})
}
