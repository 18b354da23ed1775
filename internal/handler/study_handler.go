package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

// StudyHandler handles the student's study log.
type StudyHandler struct {
	studyService *service.StudyService
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService *service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// CreateSession godoc
// POST /api/v1/student/study-sessions
func (h *StudyHandler) CreateSession(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var req model.CreateStudySessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.studyService.Create(c.Request.Context(), v.UserID, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": session})
}

// ListSessions godoc
// GET /api/v1/student/study-sessions
func (h *StudyHandler) ListSessions(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	page, perPage := pageQuery(c)
	sessions, pagination, err := h.studyService.List(c.Request.Context(), v.UserID, page, perPage)
	if err != nil {
		failWith(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"sessions": sessions}, pagination)
}

// DeleteSession godoc
// DELETE /api/v1/student/study-sessions/:id
func (h *StudyHandler) DeleteSession(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.studyService.Delete(c.Request.Context(), v.UserID, id); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Study session deleted"})
}

// GetSummary godoc
// GET /api/v1/student/study-sessions/summary?days=7
// Per-subject totals over the trailing window, also readable by parents.
func (h *StudyHandler) GetSummary(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, own := v.OwnStudentID()
	if !own {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(service.DefaultSummaryDays)))
	summary, err := h.studyService.Summary(c.Request.Context(), studentID, days)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
