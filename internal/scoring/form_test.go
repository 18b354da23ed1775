package scoring_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
)

func TestParseForm_TYT(t *testing.T) {
	d, errs := scoring.ParseForm(scoring.ExamTypeTYT, "", map[string]string{
		"tyt_turkce_dogru":    "30",
		"tyt_turkce_yanlis":   " 4 ",
		"tyt_matematik_dogru": "",
		"tyt_fen_dogru":       "12",
	})
	require.Nil(t, errs)

	tyt, ok := d.(scoring.TYTDetails)
	require.True(t, ok)
	assert.Equal(t, scoring.Count{Correct: 30, Wrong: 4}, tyt.Counts[scoring.TYTTurkce])
	assert.Equal(t, scoring.Count{}, tyt.Counts[scoring.TYTMatematik])
	assert.Equal(t, scoring.Count{Correct: 12}, tyt.Counts[scoring.TYTFen])
	assert.True(t, tyt.Counts.Has(scoring.TYTSosyal))
}

func TestParseForm_RejectsBadValues(t *testing.T) {
	_, errs := scoring.ParseForm(scoring.ExamTypeTYT, "", map[string]string{
		"tyt_turkce_dogru":     "30",
		"tyt_turkce_yanlis":    "15",
		"tyt_matematik_dogru":  "abc",
		"tyt_fen_yanlis":       "-2",
		"tyt_sosyal_dogru":     "20",
		"tyt_sosyal_yanlis":    "0",
		"unrelated_field_name": "ignored",
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "tyt_turkce_dogru")
	assert.Contains(t, errs, "tyt_matematik_dogru")
	assert.Contains(t, errs, "tyt_fen_yanlis")
	assert.NotContains(t, errs, "tyt_sosyal_dogru")
}

func TestParseForm_AYTKeepsOnlyTrackSubjects(t *testing.T) {
	d, errs := scoring.ParseForm(scoring.ExamTypeAYT, scoring.TrackEsitAgirlik, map[string]string{
		"tyt_turkce_dogru":    "35",
		"ayt_matematik_dogru": "20",
		"ayt_edebiyat_dogru":  "18",
		"ayt_fizik_dogru":     "10",
	})
	require.Nil(t, errs)

	ayt := d.(scoring.AYTDetails)
	assert.Equal(t, scoring.TrackEsitAgirlik, ayt.Track)
	assert.Len(t, ayt.TYT, 4)
	assert.ElementsMatch(t,
		[]scoring.Subject{scoring.AYTMatematik, scoring.AYTEdebiyat, scoring.AYTTarih1, scoring.AYTCografya1},
		keys(ayt.AYT))
}

func TestParseForm_AYTRequiresTrack(t *testing.T) {
	_, errs := scoring.ParseForm(scoring.ExamTypeAYT, "", map[string]string{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "ayt_type")
}

func TestParseForm_Custom(t *testing.T) {
	d, errs := scoring.ParseForm(scoring.ExamTypeCustom, "", map[string]string{"total_score": "412.5"})
	require.Nil(t, errs)
	assert.Equal(t, scoring.CustomDetails{TotalScore: 412.5}, d)

	_, errs = scoring.ParseForm(scoring.ExamTypeCustom, "", map[string]string{"total_score": "900"})
	assert.Contains(t, errs, "total_score")
}

func TestParseForm_UnknownType(t *testing.T) {
	_, errs := scoring.ParseForm(scoring.ExamType("KPSS"), "", nil)
	assert.Contains(t, errs, "exam_type")
}

func TestDetailsRoundTripThroughBlob(t *testing.T) {
	d := scoring.AYTDetails{
		Track: scoring.TrackSayisal,
		TYT: scoring.Counts{
			scoring.TYTTurkce:    {Correct: 30, Wrong: 5},
			scoring.TYTMatematik: {Correct: 25, Wrong: 3},
			scoring.TYTFen:       {Correct: 10, Wrong: 2},
			scoring.TYTSosyal:    {Correct: 15, Wrong: 1},
		},
		AYT: scoring.Counts{
			scoring.AYTMatematik: {Correct: 22, Wrong: 6},
			scoring.AYTFizik:     {Correct: 7, Wrong: 3},
			scoring.AYTKimya:     {Correct: 6, Wrong: 2},
			scoring.AYTBiyoloji:  {Correct: 8, Wrong: 1},
		},
	}
	res := scoring.ScoreForExam(d)

	blob, err := scoring.EncodeDetails(d, res)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(blob, &raw))
	assert.Equal(t, "sayisal", raw["ayt_type"])
	assert.Equal(t, *res.YKS, raw["yks_score"])

	got, err := scoring.DecodeDetails(scoring.ExamTypeAYT, blob)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDecodeDetails_LegacyStringBlob(t *testing.T) {
	blob := []byte(`{
		"tyt_turkce_dogru": "32", "tyt_turkce_yanlis": "4",
		"tyt_matematik_dogru": "", "tyt_matematik_yanlis": "",
		"tyt_fen_dogru": 45, "tyt_fen_yanlis": 3,
		"ayt_type": "", "tyt_score": 310.2
	}`)

	d, err := scoring.DecodeDetails(scoring.ExamTypeTYT, blob)
	require.NoError(t, err)

	tyt := d.(scoring.TYTDetails)
	assert.Equal(t, scoring.Count{Correct: 32, Wrong: 4}, tyt.Counts[scoring.TYTTurkce])
	assert.Equal(t, scoring.Count{}, tyt.Counts[scoring.TYTMatematik])
	// Over-cap counts are clamped to the 20-question section.
	assert.Equal(t, scoring.Count{Correct: 20, Wrong: 0}, tyt.Counts[scoring.TYTFen])
	assert.False(t, tyt.Counts.Has(scoring.TYTSosyal))
}

func TestDecodeDetails_AYTWithoutTrackSkipsBlankSubjects(t *testing.T) {
	blob := []byte(`{
		"tyt_turkce_dogru": "30", "tyt_turkce_yanlis": "2",
		"ayt_matematik_dogru": "18", "ayt_matematik_yanlis": "4",
		"ayt_fizik_dogru": "", "ayt_fizik_yanlis": ""
	}`)

	d, err := scoring.DecodeDetails(scoring.ExamTypeAYT, blob)
	require.NoError(t, err)

	ayt := d.(scoring.AYTDetails)
	assert.Equal(t, scoring.AYTTrack(""), ayt.Track)
	assert.True(t, ayt.AYT.Has(scoring.AYTMatematik))
	assert.False(t, ayt.AYT.Has(scoring.AYTFizik))
}

func TestDecodeDetails_Errors(t *testing.T) {
	_, err := scoring.DecodeDetails(scoring.ExamTypeTYT, nil)
	assert.True(t, errors.Is(err, scoring.ErrNoDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeTYT, []byte("null"))
	assert.True(t, errors.Is(err, scoring.ErrNoDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeTYT, []byte("{not json"))
	assert.True(t, errors.Is(err, scoring.ErrMalformedDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeLGS, []byte(`{"lgs_turkce_dogru": "on iki"}`))
	assert.True(t, errors.Is(err, scoring.ErrMalformedDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeLGS, []byte(`{"lgs_turkce_dogru": -3}`))
	assert.True(t, errors.Is(err, scoring.ErrMalformedDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeTYT, []byte(`{"tyt_matematik_dogru": "12.9"}`))
	assert.True(t, errors.Is(err, scoring.ErrMalformedDetails))

	_, err = scoring.DecodeDetails(scoring.ExamTypeTYT, []byte(`{"tyt_fen_yanlis": 2.5}`))
	assert.True(t, errors.Is(err, scoring.ErrMalformedDetails))
}

func TestDecodeDetails_HugeCountsClampToCap(t *testing.T) {
	d, err := scoring.DecodeDetails(scoring.ExamTypeTYT, []byte(`{
		"tyt_turkce_dogru": 1e20, "tyt_turkce_yanlis": 0,
		"tyt_fen_dogru": "3", "tyt_fen_yanlis": 1e300
	}`))
	require.NoError(t, err)

	tyt := d.(scoring.TYTDetails)
	assert.Equal(t, scoring.Count{Correct: 40, Wrong: 0}, tyt.Counts[scoring.TYTTurkce])
	assert.Equal(t, 0, tyt.Counts[scoring.TYTTurkce].Empty(scoring.QuestionCap(scoring.TYTTurkce)))
	assert.Equal(t, scoring.Count{Correct: 3, Wrong: 17}, tyt.Counts[scoring.TYTFen])
}

func keys(c scoring.Counts) []scoring.Subject {
	out := make([]scoring.Subject, 0, len(c))
	for s := range c {
		out = append(out, s)
	}
	return out
}
