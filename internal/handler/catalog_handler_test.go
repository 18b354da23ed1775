package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
)

type envelope struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func catalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	h := NewCatalogHandler()
	r := gin.New()
	r.GET("/catalog", h.GetCatalog)
	r.POST("/preview", h.Preview)
	r.POST("/validate-count", h.ValidateCount)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestGetCatalog(t *testing.T) {
	code, env := do(t, catalogRouter(), http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, code)

	var subjects []struct {
		Code          string `json:"code"`
		QuestionCount int    `json:"question_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data["subjects"], &subjects))
	assert.Len(t, subjects, 21)
	assert.Equal(t, "tyt_turkce", subjects[0].Code)
	assert.Equal(t, 40, subjects[0].QuestionCount)

	assert.JSONEq(t, `["TYT","AYT","LGS","custom"]`, string(env.Data["exam_types"]))
}

func TestPreview_ScoresWithoutSaving(t *testing.T) {
	code, env := do(t, catalogRouter(), http.MethodPost, "/preview",
		`{"exam_type":"TYT","answers":{"tyt_turkce_dogru":30,"tyt_turkce_yanlis":"4"}}`)
	require.Equal(t, http.StatusOK, code)

	var scores map[string]float64
	require.NoError(t, json.Unmarshal(env.Data["scores"], &scores))
	assert.InDelta(t, 195.7, scores["total_score"], 0.001)
	assert.InDelta(t, 195.7, scores["tyt_score"], 0.001)

	var nets map[string]float64
	require.NoError(t, json.Unmarshal(env.Data["nets"], &nets))
	assert.Equal(t, 29.0, nets["tyt_turkce"])
	assert.Equal(t, 0.0, nets["tyt_fen"])
}

func TestPreview_InvalidCounts(t *testing.T) {
	code, env := do(t, catalogRouter(), http.MethodPost, "/preview",
		`{"exam_type":"TYT","answers":{"tyt_fen_dogru":"15","tyt_fen_yanlis":"10"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_EXAM_DETAILS", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "tyt_fen_dogru")
}

func TestPreview_BindingErrors(t *testing.T) {
	code, env := do(t, catalogRouter(), http.MethodPost, "/preview", `{"exam_type":"KPSS"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "exam_type")
}

func TestValidateCount(t *testing.T) {
	r := catalogRouter()

	code, env := do(t, r, http.MethodPost, "/validate-count",
		`{"subject":"ayt_fizik","field":"yanlis","proposed":4,"other":10}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `true`, string(env.Data["valid"]))
	assert.JSONEq(t, `14`, string(env.Data["question_count"]))

	_, env = do(t, r, http.MethodPost, "/validate-count",
		`{"subject":"ayt_fizik","field":"yanlis","proposed":5,"other":10}`)
	assert.JSONEq(t, `false`, string(env.Data["valid"]))

	code, env = do(t, r, http.MethodPost, "/validate-count",
		`{"subject":"tyt_resim","field":"dogru","proposed":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error.Fields, "subject")
}
