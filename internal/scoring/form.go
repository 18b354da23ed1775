package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldTotalScore carries the hand-entered score of a custom exam.
const FieldTotalScore = "total_score"

// FieldErrors maps form field names to Turkish error messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%d invalid form field(s)", len(e))
}

// ParseForm turns raw form values into exam details. Blank or missing
// fields count as zero. Non-numeric, negative or over-cap values are
// reported per field and no details are returned.
func ParseForm(examType ExamType, track AYTTrack, fields map[string]string) (Details, FieldErrors) {
	errs := FieldErrors{}

	switch examType {
	case ExamTypeTYT:
		counts := readCounts(SubjectsOf(ExamTypeTYT), fields, errs)
		if len(errs) > 0 {
			return nil, errs
		}
		return TYTDetails{Counts: counts}, nil

	case ExamTypeAYT:
		if !track.Valid() {
			errs["ayt_type"] = "Geçerli bir AYT puan türü seçilmelidir."
			return nil, errs
		}
		tyt := readCounts(SubjectsOf(ExamTypeTYT), fields, errs)
		ayt := readCounts(trackSubjects[track], fields, errs)
		if len(errs) > 0 {
			return nil, errs
		}
		return AYTDetails{Track: track, TYT: tyt, AYT: ayt}, nil

	case ExamTypeLGS:
		counts := readCounts(SubjectsOf(ExamTypeLGS), fields, errs)
		if len(errs) > 0 {
			return nil, errs
		}
		return LGSDetails{Counts: counts}, nil

	case ExamTypeCustom:
		raw := strings.TrimSpace(fields[FieldTotalScore])
		if raw == "" {
			return CustomDetails{}, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[FieldTotalScore] = "Puan sayısal bir değer olmalıdır."
			return nil, errs
		}
		if v < 0 || v > MaxYKSScore {
			errs[FieldTotalScore] = fmt.Sprintf("Puan 0 ile %.0f arasında olmalıdır.", MaxYKSScore)
			return nil, errs
		}
		return CustomDetails{TotalScore: v}, nil
	}

	errs["exam_type"] = "Geçersiz sınav türü."
	return nil, errs
}

func readCounts(subjects []Subject, fields map[string]string, errs FieldErrors) Counts {
	counts := make(Counts, len(subjects))
	for _, s := range subjects {
		correct, okC := readInt(fields, s.Key(FieldCorrect), errs)
		wrong, okW := readInt(fields, s.Key(FieldWrong), errs)
		if !okC || !okW {
			continue
		}
		if !ValidateCount(s, FieldCorrect, correct, wrong) {
			errs[s.Key(FieldCorrect)] = fmt.Sprintf(
				"Doğru ve yanlış toplamı %d soruyu geçemez.", QuestionCap(s))
			continue
		}
		counts[s] = Count{Correct: correct, Wrong: wrong}
	}
	return counts
}

func readInt(fields map[string]string, key string, errs FieldErrors) (int, bool) {
	raw := strings.TrimSpace(fields[key])
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs[key] = "Tam sayı olmalıdır."
		return 0, false
	}
	if n < 0 {
		errs[key] = "Negatif olamaz."
		return 0, false
	}
	return n, true
}
