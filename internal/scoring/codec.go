package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Keys of the stored exam_details blob besides the raw count fields.
const (
	keyAYTType  = "ayt_type"
	keyTYTScore = "tyt_score"
	keyAYTScore = "ayt_score"
	keyYKSScore = "yks_score"
)

var (
	ErrNoDetails        = errors.New("exam details are empty")
	ErrMalformedDetails = errors.New("exam details are malformed")
)

// EncodeDetails serialises details and their scores into the flat
// exam_details blob: every raw form field plus ayt_type and the sub-scores.
func EncodeDetails(d Details, r Result) ([]byte, error) {
	blob := make(map[string]interface{})

	for s, c := range d.Answers() {
		blob[s.Key(FieldCorrect)] = c.Correct
		blob[s.Key(FieldWrong)] = c.Wrong
	}

	switch d := d.(type) {
	case AYTDetails:
		blob[keyAYTType] = string(d.Track)
	case CustomDetails:
		blob[FieldTotalScore] = d.TotalScore
	}

	if r.TYT != nil {
		blob[keyTYTScore] = *r.TYT
	}
	if r.AYT != nil {
		blob[keyAYTScore] = *r.AYT
	}
	if r.YKS != nil {
		blob[keyYKSScore] = *r.YKS
	}

	return json.Marshal(blob)
}

// DecodeDetails parses a stored exam_details blob back into typed details.
// Count values may be JSON numbers or numeric strings; counts that exceed
// the subject cap are clamped. Blobs that cannot be read return an error
// wrapping ErrNoDetails or ErrMalformedDetails.
func DecodeDetails(examType ExamType, blob []byte) (Details, error) {
	trimmed := strings.TrimSpace(string(blob))
	if trimmed == "" || trimmed == "null" {
		return nil, ErrNoDetails
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDetails, err)
	}

	switch examType {
	case ExamTypeTYT:
		counts, err := decodeCounts(raw, SubjectsOf(ExamTypeTYT), false)
		if err != nil {
			return nil, err
		}
		return TYTDetails{Counts: counts}, nil

	case ExamTypeAYT:
		tyt, err := decodeCounts(raw, SubjectsOf(ExamTypeTYT), false)
		if err != nil {
			return nil, err
		}
		track := AYTTrack(stringValue(raw[keyAYTType]))
		subjects := SubjectsOf(ExamTypeAYT)
		if track.Valid() {
			subjects = trackSubjects[track]
		} else {
			track = ""
		}
		// Without a known track, blank AYT fields are treated as not taken.
		ayt, err := decodeCounts(raw, subjects, !track.Valid())
		if err != nil {
			return nil, err
		}
		return AYTDetails{Track: track, TYT: tyt, AYT: ayt}, nil

	case ExamTypeLGS:
		counts, err := decodeCounts(raw, SubjectsOf(ExamTypeLGS), false)
		if err != nil {
			return nil, err
		}
		return LGSDetails{Counts: counts}, nil

	case ExamTypeCustom:
		v, present, err := numberValue(raw[FieldTotalScore])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDetails, FieldTotalScore, err)
		}
		if !present {
			v = 0
		}
		return CustomDetails{TotalScore: v}, nil
	}

	return nil, fmt.Errorf("%w: unknown exam type %q", ErrMalformedDetails, examType)
}

func decodeCounts(raw map[string]interface{}, subjects []Subject, skipBlank bool) (Counts, error) {
	counts := make(Counts, len(subjects))
	for _, s := range subjects {
		cv, cPresent, err := numberValue(raw[s.Key(FieldCorrect)])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDetails, s.Key(FieldCorrect), err)
		}
		wv, wPresent, err := numberValue(raw[s.Key(FieldWrong)])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDetails, s.Key(FieldWrong), err)
		}

		if skipBlank {
			if !cPresent && !wPresent {
				continue
			}
		} else {
			_, hasC := raw[s.Key(FieldCorrect)]
			_, hasW := raw[s.Key(FieldWrong)]
			if !hasC && !hasW {
				continue
			}
		}

		if cv < 0 || wv < 0 {
			return nil, fmt.Errorf("%w: negative count for %s", ErrMalformedDetails, s)
		}
		if cv != math.Trunc(cv) || wv != math.Trunc(wv) {
			return nil, fmt.Errorf("%w: fractional count for %s", ErrMalformedDetails, s)
		}
		// Trim while still float64 so huge values cannot wrap on conversion.
		questionCap := float64(QuestionCap(s))
		counts[s] = clampCount(s, Count{Correct: int(math.Min(cv, questionCap)), Wrong: int(math.Min(wv, questionCap))})
	}
	return counts, nil
}

// clampCount keeps a stored count within the subject cap, trimming wrong
// answers first.
func clampCount(s Subject, c Count) Count {
	questionCap := QuestionCap(s)
	if c.Correct > questionCap {
		c.Correct = questionCap
	}
	if c.Correct+c.Wrong > questionCap {
		c.Wrong = questionCap - c.Correct
	}
	return c
}

// numberValue reads a JSON number or numeric string. present is false for
// missing, null or blank values.
func numberValue(v interface{}) (value float64, present bool, err error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false, errors.New("not a finite number")
		}
		return t, true, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, errors.New("not a finite number")
		}
		return f, true, nil
	}
	return 0, false, fmt.Errorf("unexpected value type %T", v)
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
