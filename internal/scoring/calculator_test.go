package scoring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

func TestNetScore(t *testing.T) {
	tests := []struct {
		correct, wrong int
		want           float64
	}{
		{0, 40, 0},
		{40, 0, 40},
		{20, 4, 19},
		{1, 8, 0},
		{10, 2, 9.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.NetScore(tt.correct, tt.wrong), "NetScore(%d, %d)", tt.correct, tt.wrong)
	}
}

func TestNetScore_NeverNegative(t *testing.T) {
	for c := 0; c <= 40; c++ {
		for w := 0; w+c <= 40; w++ {
			assert.GreaterOrEqual(t, scoring.NetScore(c, w), 0.0)
		}
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		name     string
		subject  scoring.Subject
		field    scoring.Field
		proposed int
		other    int
		want     bool
	}{
		{"over cap", scoring.TYTTurkce, scoring.FieldCorrect, 41, 0, false},
		{"sum over cap", scoring.TYTTurkce, scoring.FieldCorrect, 30, 15, false},
		{"within cap", scoring.TYTTurkce, scoring.FieldCorrect, 25, 15, true},
		{"exactly cap", scoring.AYTFizik, scoring.FieldWrong, 4, 10, true},
		{"wrong field over", scoring.AYTFizik, scoring.FieldWrong, 5, 10, false},
		{"negative", scoring.LGSDin, scoring.FieldCorrect, -1, 0, false},
		{"unknown subject", scoring.Subject("tyt_resim"), scoring.FieldCorrect, 1, 0, false},
		{"unknown field", scoring.TYTFen, scoring.Field("bos"), 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.ValidateCount(tt.subject, tt.field, tt.proposed, tt.other)
			assert.Equal(t, tt.want, got)
		})
	}
}

func fullCounts(subjects []scoring.Subject) scoring.Counts {
	counts := scoring.Counts{}
	for _, s := range subjects {
		counts[s] = scoring.Count{Correct: scoring.QuestionCap(s)}
	}
	return counts
}

func TestScoreTYT_Bounds(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScoreTYT(scoring.Counts{}))
	assert.Equal(t, 500.0, scoring.ScoreTYT(fullCounts(scoring.SubjectsOf(scoring.ExamTypeTYT))))

	counts := scoring.Counts{
		scoring.TYTTurkce:    {Correct: 30, Wrong: 4},
		scoring.TYTMatematik: {Correct: 20, Wrong: 8},
		scoring.TYTFen:       {Correct: 10, Wrong: 0},
		scoring.TYTSosyal:    {Correct: 12, Wrong: 4},
	}
	// 3.3*29 + 3.3*18 + 3.4*10 + 3.4*11 + 100
	assert.InDelta(t, 326.5, scoring.ScoreTYT(counts), 0.001)
}

func TestScoreAYT_TrackIsolation(t *testing.T) {
	sayisal := scoring.Counts{
		scoring.AYTMatematik: {Correct: 30, Wrong: 4},
		scoring.AYTFizik:     {Correct: 10, Wrong: 0},
		scoring.AYTKimya:     {Correct: 8, Wrong: 4},
		scoring.AYTBiyoloji:  {Correct: 9, Wrong: 0},
	}
	base := scoring.ScoreAYT(sayisal, scoring.TrackSayisal)
	// nets 29 + 10 + 7 + 9 = 55 → 55*5+100
	assert.Equal(t, 375.0, base)

	withVerbal := scoring.Counts{}
	for s, c := range sayisal {
		withVerbal[s] = c
	}
	withVerbal[scoring.AYTEdebiyat] = scoring.Count{Correct: 24}
	withVerbal[scoring.AYTTarih1] = scoring.Count{Correct: 10}
	withVerbal[scoring.AYTCografya2] = scoring.Count{Correct: 3, Wrong: 2}
	withVerbal[scoring.AYTFelsefe] = scoring.Count{Correct: 12}
	withVerbal[scoring.AYTDin] = scoring.Count{Correct: 6}

	assert.Equal(t, base, scoring.ScoreAYT(withVerbal, scoring.TrackSayisal))
}

func TestScoreAYT_MaxPerTrack(t *testing.T) {
	for _, track := range scoring.Tracks() {
		got := scoring.ScoreAYT(fullCounts(scoring.TrackSubjects(track)), track)
		assert.Equal(t, 500.0, got, "track %s", track)
		assert.Equal(t, 100.0, scoring.ScoreAYT(scoring.Counts{}, track), "track %s", track)
	}
}

func TestScoreYKS(t *testing.T) {
	assert.Equal(t, 500.0, scoring.ScoreYKS(500, 500))
	assert.Equal(t, 100.0, scoring.ScoreYKS(100, 100))
	assert.Equal(t, 340.0, scoring.ScoreYKS(400, 300))
	assert.Equal(t, 100.0, scoring.ScoreYKS(0, 0))
}

func TestScoreYKS_PanicsWithoutSubScores(t *testing.T) {
	assert.Panics(t, func() { scoring.ScoreYKS(math.NaN(), 300) })
	assert.Panics(t, func() { scoring.ScoreYKS(300, math.NaN()) })
}

func TestScoreLGS(t *testing.T) {
	assert.Equal(t, 500.0, scoring.ScoreLGS(fullCounts(scoring.SubjectsOf(scoring.ExamTypeLGS))))
	assert.Equal(t, 0.0, scoring.ScoreLGS(scoring.Counts{}))

	counts := scoring.Counts{
		scoring.LGSTurkce:    {Correct: 18, Wrong: 0},
		scoring.LGSMatematik: {Correct: 9, Wrong: 0},
		scoring.LGSInkilap:   {Correct: 9, Wrong: 0},
	}
	// (4*18 + 4*9 + 9) * 500 / 270 = 216.666…
	assert.Equal(t, 216.67, scoring.ScoreLGS(counts))
}

func TestScoreForExam(t *testing.T) {
	t.Run("TYT", func(t *testing.T) {
		res := scoring.ScoreForExam(scoring.TYTDetails{Counts: scoring.Counts{}})
		assert.Equal(t, 100.0, res.Total)
		if assert.NotNil(t, res.TYT) {
			assert.Equal(t, 100.0, *res.TYT)
		}
		assert.Nil(t, res.YKS)
	})

	t.Run("AYT reports every figure", func(t *testing.T) {
		d := scoring.AYTDetails{
			Track: scoring.TrackSayisal,
			TYT:   fullCounts(scoring.SubjectsOf(scoring.ExamTypeTYT)),
			AYT:   scoring.Counts{},
		}
		res := scoring.ScoreForExam(d)
		if assert.NotNil(t, res.TYT) && assert.NotNil(t, res.AYT) && assert.NotNil(t, res.YKS) {
			assert.Equal(t, 500.0, *res.TYT)
			assert.Equal(t, 100.0, *res.AYT)
			assert.Equal(t, 260.0, *res.YKS)
			assert.Equal(t, *res.YKS, res.Total)
		}
	})

	t.Run("custom is clamped", func(t *testing.T) {
		assert.Equal(t, 500.0, scoring.ScoreForExam(scoring.CustomDetails{TotalScore: 612}).Total)
		assert.Equal(t, 321.46, scoring.ScoreForExam(scoring.CustomDetails{TotalScore: 321.456}).Total)
	})
}
