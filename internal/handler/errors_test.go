package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

func TestFailWith_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get class: %w", repository.ErrNotFound), http.StatusNotFound},
		{repository.ErrDuplicate, http.StatusConflict},
		{repository.ErrStillReferenced, http.StatusConflict},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrHomeworkCompleted, http.StatusConflict},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrParentAccessDisabled, http.StatusUnauthorized},
		{service.ErrSessionAlreadyActive, http.StatusConflict},
		{scoring.FieldErrors{"tyt_fen_dogru": "x"}, http.StatusUnprocessableEntity},
		{service.InvalidSettingsError{"analysis.recent_window": "x"}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		failWith(c, tt.err)
		assert.Equal(t, tt.want, w.Code, "error %v", tt.err)
	}
}

func TestIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := intParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-3"}}
	_, ok = intParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
