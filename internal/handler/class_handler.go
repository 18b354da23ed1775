package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

// ClassHandler handles teacher-facing class management (CRUD).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/teacher/classes
// Lists the teacher's classes, or every class for administrators.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	classes, err := h.classService.List(c.Request.Context(), v)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/teacher/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.Get(c.Request.Context(), v, id)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// CreateClass godoc
// POST /api/v1/teacher/classes
// Creates a class owned by the calling teacher.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), v, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/teacher/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), v, id, req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// DeleteClass godoc
// DELETE /api/v1/teacher/classes/:id
// Fails with 409 while students are still enrolled.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), v, id); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Class deleted"})
}
