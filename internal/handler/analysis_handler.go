package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

// AnalysisHandler serves performance analyses.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// GetOwnAnalysis godoc
// GET /api/v1/student/analysis and GET /api/v1/parent/analysis
// Returns the analysis of the student the token belongs to.
func (h *AnalysisHandler) GetOwnAnalysis(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, own := v.OwnStudentID()
	if !own {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}
	h.respond(c, v, studentID)
}

// GetStudentAnalysis godoc
// GET /api/v1/teacher/students/:id/analysis
func (h *AnalysisHandler) GetStudentAnalysis(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	studentID, ok := intParam(c, "id")
	if !ok {
		return
	}
	h.respond(c, v, studentID)
}

func (h *AnalysisHandler) respond(c *gin.Context, v service.Viewer, studentID int) {
	report, err := h.analysisService.ForViewer(c.Request.Context(), v, studentID)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"analysis": report})
}
