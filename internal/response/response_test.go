package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, 3, NewPagination(1, 20, 41).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}

func TestFailWithFields_CarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrInvalidExamDetails, map[string]string{
			"tyt_turkce_dogru": "Toplam soru sayısı aşıldı",
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-123", body.Metadata.RequestID)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrInvalidExamDetails, body.Error.Code)
	assert.Equal(t, GetMessage(ErrInvalidExamDetails), body.Error.Message)
	assert.Contains(t, body.Error.Fields, "tyt_turkce_dogru")
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_ReplacesUnsafeIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{}) })

	for _, sent := range []string{"", "has space", "line\nbreak", strings.Repeat("a", 65)} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderRequestID, sent)
		r.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "sent %q, got %q", sent, got)
	}
}

func TestRequestIDMiddleware_LogsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestIDMiddleware(zerolog.New(&buf)))
	r.GET("/ok", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{}) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pool exhausted"))
		Fail(c, http.StatusInternalServerError, ErrInternal)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Zero(t, buf.Len())

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-500")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "req-500", entry["request_id"])
	assert.Equal(t, "/boom", entry["route"])
	assert.EqualValues(t, 500, entry["status"])
	assert.Equal(t, []interface{}{"pool exhausted"}, entry["errors"])
}
