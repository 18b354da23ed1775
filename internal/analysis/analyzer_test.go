package analysis_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinavkoc/sinavkoc-backend/internal/analysis"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

var day0 = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

func tytRecord(day, turkce, mat, fen, sosyal int) analysis.Record {
	d := scoring.TYTDetails{Counts: scoring.Counts{
		scoring.TYTTurkce:    {Correct: turkce},
		scoring.TYTMatematik: {Correct: mat},
		scoring.TYTFen:       {Correct: fen},
		scoring.TYTSosyal:    {Correct: sosyal},
	}}
	return analysis.Record{
		ExamType:   scoring.ExamTypeTYT,
		ExamName:   fmt.Sprintf("Deneme %d", day),
		ExamDate:   day0.AddDate(0, 0, day),
		TotalScore: scoring.ScoreForExam(d).Total,
		Details:    d,
	}
}

// mathSeries builds TYT exams oldest first with the given Matematik nets;
// the other subjects stay at a neutral 12 net.
func mathSeries(nets ...int) []analysis.Record {
	records := make([]analysis.Record, len(nets))
	for i, n := range nets {
		records[i] = tytRecord(i+1, 12, n, 12, 12)
	}
	return records
}

func reversed(records []analysis.Record) []analysis.Record {
	out := make([]analysis.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

func trendFor(t *testing.T, res analysis.Result, subject string) analysis.TrendAnalysis {
	t.Helper()
	for _, tr := range res.Trends {
		if tr.Subject == subject {
			return tr
		}
	}
	t.Fatalf("no trend for %s", subject)
	return analysis.TrendAnalysis{}
}

func mentions(list []string, subject string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, subject+" ") {
			return true
		}
	}
	return false
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	first := a.Analyze(nil)
	second := a.Analyze([]analysis.Record{})

	for _, res := range []analysis.Result{first, second} {
		assert.NotNil(t, res.Trends)
		assert.Empty(t, res.Trends)
		assert.Empty(t, res.EmptyAnswerWarnings)
		assert.Empty(t, res.Weaknesses)
		assert.Empty(t, res.Strengths)
		assert.Empty(t, res.Recommendations)
		assert.Empty(t, res.StudyPlan)
	}
	assert.Equal(t, first, second)
}

func TestAnalyze_MathScenario(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	// Input order must not matter.
	res := a.Analyze(reversed(mathSeries(10, 10, 10, 20, 20)))

	tr := trendFor(t, res, analysis.SubjectMatematik)
	assert.Equal(t, analysis.TrendIncreasing, tr.Trend)
	assert.Equal(t, 6.67, tr.Change)
	assert.NotEmpty(t, tr.Message)

	// Average 14 is neither weak nor strong.
	assert.False(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	assert.False(t, mentions(res.Strengths, analysis.SubjectMatematik))
	assert.False(t, mentions(res.Recommendations, analysis.SubjectMatematik))

	assert.Equal(t, analysis.TrendStable, trendFor(t, res, analysis.SubjectTurkce).Trend)
}

func TestAnalyze_TrendBoundaryIsStrict(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	up := a.Analyze(mathSeries(10, 10, 11, 11, 11))
	assert.Equal(t, analysis.TrendStable, trendFor(t, up, analysis.SubjectMatematik).Trend)
	assert.Equal(t, 1.0, trendFor(t, up, analysis.SubjectMatematik).Change)

	down := a.Analyze(mathSeries(11, 11, 10, 10, 10))
	assert.Equal(t, analysis.TrendStable, trendFor(t, down, analysis.SubjectMatematik).Trend)
	assert.Equal(t, -1.0, trendFor(t, down, analysis.SubjectMatematik).Change)
}

func TestAnalyze_TrendNeedsThreePoints(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())
	res := a.Analyze(mathSeries(5, 5))
	assert.Empty(t, res.Trends)
	// Averages still use every available point.
	assert.True(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	assert.False(t, mentions(res.Weaknesses, analysis.SubjectTurkce))
}

func TestAnalyze_OnlyRecentWindowCounts(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())
	// The two oldest exams would make the trend decreasing if included.
	res := a.Analyze(mathSeries(30, 30, 10, 10, 10, 10, 10))
	tr := trendFor(t, res, analysis.SubjectMatematik)
	assert.Equal(t, analysis.TrendStable, tr.Trend)
	assert.Equal(t, 0.0, tr.Change)
}

func TestAnalyze_EmptyAnswerWarnings(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	// Türkçe 20/40 answered: 20 empty > 12 → warning.
	res := a.Analyze([]analysis.Record{tytRecord(1, 20, 40, 20, 20)})
	require.Len(t, res.EmptyAnswerWarnings, 1)
	assert.Contains(t, res.EmptyAnswerWarnings[0], "TYT Türkçe")
	assert.Contains(t, res.EmptyAnswerWarnings[0], "20 soru")
	assert.Contains(t, res.EmptyAnswerWarnings[0], "%50")

	// 30 correct + 5 wrong leaves 5 empty → no warning.
	d := scoring.TYTDetails{Counts: scoring.Counts{
		scoring.TYTTurkce:    {Correct: 30, Wrong: 5},
		scoring.TYTMatematik: {Correct: 40},
		scoring.TYTFen:       {Correct: 20},
		scoring.TYTSosyal:    {Correct: 20},
	}}
	res = a.Analyze([]analysis.Record{{ExamType: scoring.ExamTypeTYT, ExamDate: day0, Details: d}})
	assert.Empty(t, res.EmptyAnswerWarnings)
}

func TestAnalyze_EmptyAnswerWarningsAreDeduplicated(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())
	res := a.Analyze([]analysis.Record{
		tytRecord(1, 20, 40, 20, 20),
		tytRecord(2, 20, 40, 20, 20),
		tytRecord(3, 10, 40, 20, 20),
	})
	assert.Len(t, res.EmptyAnswerWarnings, 2)
}

func TestAnalyze_WeaknessAndStrengthThresholds(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	t.Run("exactly 8 is not weak", func(t *testing.T) {
		res := a.Analyze(mathSeries(8, 8, 8))
		assert.False(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	})

	t.Run("exactly 15 is not strong", func(t *testing.T) {
		res := a.Analyze(mathSeries(15, 15, 15))
		assert.False(t, mentions(res.Strengths, analysis.SubjectMatematik))
		assert.False(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	})

	t.Run("below 8 adds a study plan item", func(t *testing.T) {
		res := a.Analyze(mathSeries(5, 6, 4))
		assert.True(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
		require.NotEmpty(t, res.StudyPlan)
		item := res.StudyPlan[0]
		assert.Equal(t, analysis.SubjectMatematik, item.Subject)
		assert.Equal(t, "Temel Konular", item.Topic)
		assert.Equal(t, analysis.PriorityHigh, item.Priority)
		assert.Equal(t, 15, item.EstimatedHours)
	})

	t.Run("single exam still produces averages", func(t *testing.T) {
		res := a.Analyze(mathSeries(3))
		assert.True(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	})

	t.Run("strong and rising adds a recommendation", func(t *testing.T) {
		res := a.Analyze(mathSeries(16, 16, 16, 30, 30))
		assert.True(t, mentions(res.Strengths, analysis.SubjectMatematik))
		assert.True(t, mentions(res.Recommendations, analysis.SubjectMatematik))
	})
}

func TestAnalyze_CoarseDeclineIsAWeakness(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())
	// Newest first: 10, 10 | 11, 11, 11 → coarse change -1 (decreasing),
	// trend panel change -0.67 (stable).
	res := a.Analyze(mathSeries(11, 11, 11, 10, 10))

	assert.Equal(t, analysis.TrendStable, trendFor(t, res, analysis.SubjectMatematik).Trend)
	assert.True(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
	for _, item := range res.StudyPlan {
		assert.NotEqual(t, analysis.SubjectMatematik, item.Subject)
	}
}

func TestAnalyze_OverallTrajectory(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	scores := func(totals ...float64) []analysis.Record {
		records := make([]analysis.Record, len(totals))
		for i, total := range totals {
			records[i] = analysis.Record{
				ExamType:   scoring.ExamTypeCustom,
				ExamDate:   day0.AddDate(0, 0, i),
				TotalScore: total,
				Details:    scoring.CustomDetails{TotalScore: total},
			}
		}
		return records
	}

	t.Run("rising", func(t *testing.T) {
		res := a.Analyze(scores(340, 345, 350, 390, 400))
		require.Len(t, res.Recommendations, 1)
		assert.Contains(t, res.Recommendations[0], "yükseldi")
		assert.Empty(t, res.StudyPlan)
	})

	t.Run("falling", func(t *testing.T) {
		res := a.Analyze(scores(400, 390, 350, 340, 345))
		require.Len(t, res.Recommendations, 1)
		assert.Contains(t, res.Recommendations[0], "düştü")
		require.Len(t, res.StudyPlan, 1)
		assert.Equal(t, analysis.StudyPlanItem{
			Subject:        "Genel",
			Topic:          "Çalışma Planı",
			Priority:       analysis.PriorityHigh,
			EstimatedHours: 20,
			Description:    res.StudyPlan[0].Description,
		}, res.StudyPlan[0])
	})

	t.Run("within delta", func(t *testing.T) {
		res := a.Analyze(scores(350, 352, 351, 354, 355))
		assert.Empty(t, res.Recommendations)
	})

	t.Run("needs three exams", func(t *testing.T) {
		res := a.Analyze(scores(200, 400))
		assert.Empty(t, res.Recommendations)
	})
}

func TestAnalyze_MalformedDetailsAreSkipped(t *testing.T) {
	a := analysis.New(analysis.DefaultConfig())

	records := mathSeries(10, 10)
	records = append(records, analysis.Record{
		ExamType:   scoring.ExamTypeTYT,
		ExamDate:   day0.AddDate(0, 0, 10),
		TotalScore: 450,
	})

	res := a.Analyze(records)
	// Only two usable Matematik points → no trend panel entry.
	assert.Empty(t, res.Trends)
	// The broken exam still counts toward the overall trajectory.
	require.NotEmpty(t, res.Recommendations)
	assert.Contains(t, res.Recommendations[len(res.Recommendations)-1], "yükseldi")
}

func TestAnalyze_CustomConfig(t *testing.T) {
	cfg := analysis.DefaultConfig()
	cfg.WeakNetThreshold = 12
	a := analysis.New(cfg)

	res := a.Analyze(mathSeries(11, 11, 11))
	assert.True(t, mentions(res.Weaknesses, analysis.SubjectMatematik))
}

func TestNew_NormalizesConfig(t *testing.T) {
	a := analysis.New(analysis.Config{})
	cfg := a.Config()
	assert.Equal(t, 5, cfg.RecentWindow)
	assert.Equal(t, 3, cfg.TrendMinPoints)
	assert.Equal(t, 0.3, cfg.EmptyAnswerRatio)
}
