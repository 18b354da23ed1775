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

// CatalogHandler exposes the subject catalogue and the stateless scoring
// helpers the exam entry form calls while the student types.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type trackInfo struct {
	Code     scoring.AYTTrack  `json:"code"`
	Label    string            `json:"label"`
	Subjects []scoring.Subject `json:"subjects"`
}

// GetCatalog godoc
// GET /api/v1/public/catalog
// Returns exam types, AYT tracks and every subject with its question count.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	tracks := make([]trackInfo, 0, len(scoring.Tracks()))
	for _, t := range scoring.Tracks() {
		tracks = append(tracks, trackInfo{Code: t, Label: t.Label(), Subjects: scoring.TrackSubjects(t)})
	}

	response.Success(c, http.StatusOK, gin.H{
		"exam_types": []scoring.ExamType{
			scoring.ExamTypeTYT, scoring.ExamTypeAYT, scoring.ExamTypeLGS, scoring.ExamTypeCustom,
		},
		"ayt_tracks": tracks,
		"subjects":   scoring.Catalog(),
	})
}

// Preview godoc
// POST /api/v1/public/exams/preview
// Scores a form without saving it.
func (h *CatalogHandler) Preview(c *gin.Context) {
	var req model.PreviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	eval, err := service.Evaluate(req.ExamType, req.AYTType, req.Answers)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"scores": eval.Result,
		"nets":   eval.Nets,
	})
}

// ValidateCount godoc
// POST /api/v1/public/exams/validate-count
// Reports whether a proposed correct/wrong count fits the subject's cap.
func (h *CatalogHandler) ValidateCount(c *gin.Context) {
	var req model.ValidateCountRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := scoring.Subject(req.Subject)
	if _, known := scoring.Lookup(subject); !known {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"subject": "unknown subject"})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"valid":          scoring.ValidateCount(subject, scoring.Field(req.Field), req.Proposed, req.Other),
		"question_count": scoring.QuestionCap(subject),
	})
}
