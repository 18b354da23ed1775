package service

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

func TestEvaluate(t *testing.T) {
	eval, err := Evaluate("TYT", "", map[string]string{
		"tyt_turkce_dogru":     "30",
		"tyt_turkce_yanlis":    "4",
		"tyt_matematik_dogru":  "20",
		"tyt_matematik_yanlis": "8",
		"tyt_fen_dogru":        "10",
		"tyt_sosyal_dogru":     "12",
		"tyt_sosyal_yanlis":    "4",
	})
	require.NoError(t, err)
	assert.InDelta(t, 326.5, eval.Result.Total, 0.001)
	assert.Equal(t, 29.0, eval.Nets[scoring.TYTTurkce])
	assert.Equal(t, 18.0, eval.Nets[scoring.TYTMatematik])

	_, err = Evaluate("TYT", "", map[string]string{"tyt_fen_dogru": "25"})
	var fields scoring.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "tyt_fen_dogru")
}

func TestToRecords_KeepsMalformedAsNilDetails(t *testing.T) {
	good, err := scoring.EncodeDetails(
		scoring.LGSDetails{Counts: scoring.Counts{scoring.LGSTurkce: {Correct: 18}}},
		scoring.Result{Total: 300},
	)
	require.NoError(t, err)

	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	records := ToRecords([]model.ExamResult{
		{ID: uuid.New(), ExamType: "LGS", ExamName: "Deneme 1", ExamDate: date, TotalScore: 300, Details: good},
		{ID: uuid.New(), ExamType: "LGS", ExamName: "Bozuk", ExamDate: date, TotalScore: 250, Details: json.RawMessage(`{"lgs_turkce_dogru": "x"}`)},
		{ID: uuid.New(), ExamType: "custom", ExamName: "Boş", ExamDate: date, TotalScore: 200},
	}, zerolog.New(io.Discard))

	require.Len(t, records, 3)
	assert.NotNil(t, records[0].Details)
	assert.Equal(t, scoring.ExamTypeLGS, records[0].ExamType)
	assert.Nil(t, records[1].Details)
	assert.Equal(t, 250.0, records[1].TotalScore)
	assert.Nil(t, records[2].Details)
}

func TestParseAnalysisConfig(t *testing.T) {
	cfg := ParseAnalysisConfig(map[string]string{
		"analysis.weak_net_threshold":   "10",
		"analysis.recent_window":        " 8 ",
		"analysis.trend_threshold":      "abc",
		"analysis.empty_answer_ratio":   "-1",
		"analysis.strong_net_threshold": "0",
		"analysis.unknown":              "3",
		"site.title":                    "SınavKoç",
	})

	def := analysis.DefaultConfig()
	assert.Equal(t, 10.0, cfg.WeakNetThreshold)
	assert.Equal(t, 8, cfg.RecentWindow)
	assert.Equal(t, def.TrendThreshold, cfg.TrendThreshold)
	assert.Equal(t, def.EmptyAnswerRatio, cfg.EmptyAnswerRatio)
	assert.Equal(t, def.CoarseTrendThreshold, cfg.CoarseTrendThreshold)
	assert.Equal(t, def.StrongNetThreshold, cfg.StrongNetThreshold)
}

func TestValidateAnalysisSettings(t *testing.T) {
	assert.Nil(t, ValidateAnalysisSettings(map[string]string{
		"analysis.recent_window":   "6",
		"analysis.trend_threshold": "1.5",
		"site.title":               "anything",
	}))

	errs := ValidateAnalysisSettings(map[string]string{
		"analysis.recent_window":          "0",
		"analysis.trend_threshold":        "fast",
		"analysis.mystery_knob":           "1",
		"analysis.coarse_trend_threshold": "0",
	})
	require.NotNil(t, errs)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "analysis.coarse_trend_threshold")
	assert.Contains(t, errs, "analysis.mystery_knob")
}

func TestAnalysisReport_JSONFlattensResult(t *testing.T) {
	report := AnalysisReport{
		StudentID: 3,
		ExamCount: 0,
		Result:    analysis.New(analysis.DefaultConfig()).Analyze(nil),
	}
	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body, "trends")
	assert.Contains(t, body, "study_plan")
	assert.EqualValues(t, 3, body["student_id"])
}
