package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/middleware"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	studentService *service.StudentService
	teacherService *service.TeacherService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	studentService *service.StudentService,
	teacherService *service.TeacherService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		studentService: studentService,
		teacherService: teacherService,
	}
}

// StudentLogin godoc
// POST /api/v1/auth/student/login
// Validates student number + password, rejects a second device, returns JWT.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.studentService.StudentLogin(c.Request.Context(), req.StudentNumber, req.Password)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ParentLogin godoc
// POST /api/v1/auth/parent/login
// Validates student number + parent PIN, returns a read-only parent JWT.
func (h *AuthHandler) ParentLogin(c *gin.Context) {
	var req model.ParentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.studentService.ParentLogin(c.Request.Context(), req.StudentNumber, req.PIN)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// TeacherLogin godoc
// POST /api/v1/auth/teacher/login
// Validates email + password, returns JWT with permissions.
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req model.TeacherLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.teacherService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetStudentProfile godoc
// GET /api/v1/auth/student/me and GET /api/v1/auth/parent/me
// Returns the student the token belongs to.
func (h *AuthHandler) GetStudentProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":    student,
		"token_type": claims.TokenType,
	})
}

// GetTeacherProfile godoc
// GET /api/v1/auth/teacher/me
// Returns the authenticated teacher and their permissions.
func (h *AuthHandler) GetTeacherProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"teacher":     teacher,
		"permissions": claims.Permissions,
	})
}

// StudentLogout godoc
// POST /api/v1/auth/student/logout
// Releases the student's device session so another device can log in.
func (h *AuthHandler) StudentLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), claims.UserID); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
