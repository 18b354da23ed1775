package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sinavkoc/sinavkoc-backend/internal/middleware"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

// failWith maps service and repository errors onto the response envelope.
// Anything unrecognised is recorded on the context and reported as 500.
func failWith(c *gin.Context, err error) {
	var fieldErrs scoring.FieldErrors
	var settingErrs service.InvalidSettingsError

	switch {
	case errors.As(err, &fieldErrs):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrInvalidExamDetails, fieldErrs)
	case errors.As(err, &settingErrs):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, settingErrs)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrStillReferenced):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrHomeworkCompleted):
		response.Fail(c, http.StatusConflict, response.ErrHomeworkCompleted)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrParentAccessDisabled):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSessionAlreadyActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// intParam parses a positive integer path parameter.
func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// uuidParam parses a UUID path parameter.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// optionalIntQuery parses an optional positive integer query parameter.
// A malformed value is reported and ok is false.
func optionalIntQuery(c *gin.Context, name string) (value *int, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{name: "must be a positive integer"})
		return nil, false
	}
	return &v, true
}

// pageQuery reads ?page and ?per_page; services normalise the values.
func pageQuery(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return page, perPage
}

// viewer returns the request's Viewer or writes a 401.
func viewer(c *gin.Context) (service.Viewer, bool) {
	v, ok := middleware.GetViewer(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	}
	return v, ok
}
