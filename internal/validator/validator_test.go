package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type examForm struct {
	ExamType string `json:"exam_type" binding:"required,exam_type"`
	AYTType  string `json:"ayt_type" binding:"omitempty,ayt_track"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst examForm
	return Bind(c, &dst)
}

func TestBind_ExamTags(t *testing.T) {
	Setup()

	assert.Nil(t, bindBody(t, `{"exam_type":"AYT","ayt_type":"sayisal"}`))
	assert.Nil(t, bindBody(t, `{"exam_type":"custom"}`))

	errs := bindBody(t, `{"exam_type":"KPSS","ayt_type":"dil"}`)
	require.NotNil(t, errs)
	assert.Equal(t, "exam_type must be one of TYT, AYT, LGS, custom", errs["exam_type"])
	assert.Contains(t, errs, "ayt_type")
}

func TestBind_SyntaxErrorGoesToDetail(t *testing.T) {
	Setup()
	errs := bindBody(t, `{"exam_type":`)
	assert.Contains(t, errs, "detail")
}
