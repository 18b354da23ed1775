package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used by exam and study dates.
const DateLayout = "2006-01-02"

// ExamResult is one practice exam a student recorded. Details holds the
// flat per-subject answer counts and sub-scores.
type ExamResult struct {
	ID         uuid.UUID       `json:"id"`
	StudentID  int             `json:"student_id"`
	ExamType   string          `json:"exam_type"`
	ExamName   string          `json:"exam_name"`
	ExamDate   time.Time       `json:"exam_date"`
	TotalScore float64         `json:"total_score"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ExamResultRequest is the payload for recording, editing or previewing an
// exam. Answers carries the form fields, e.g. "tyt_turkce_dogru".
type ExamResultRequest struct {
	ExamType string      `json:"exam_type" binding:"required,exam_type"`
	AYTType  string      `json:"ayt_type" binding:"omitempty,ayt_track"`
	ExamName string      `json:"exam_name" binding:"required,min=1,max=255"`
	ExamDate string      `json:"exam_date" binding:"required,datetime=2006-01-02"`
	Answers  FormAnswers `json:"answers"`
}

// PreviewRequest is ExamResultRequest without the bookkeeping fields.
type PreviewRequest struct {
	ExamType string      `json:"exam_type" binding:"required,exam_type"`
	AYTType  string      `json:"ayt_type" binding:"omitempty,ayt_track"`
	Answers  FormAnswers `json:"answers"`
}

// ValidateCountRequest asks whether one answer-count input is acceptable.
type ValidateCountRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Field    string `json:"field" binding:"required,oneof=dogru yanlis"`
	Proposed int    `json:"proposed"`
	Other    int    `json:"other"`
}

// FormAnswers accepts numbers or strings per field so browser forms and
// typed clients can both submit counts.
type FormAnswers map[string]string

func (f *FormAnswers) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FormAnswers, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = fmt.Sprintf("%g", t)
		default:
			return fmt.Errorf("answers.%s: unsupported value", k)
		}
	}
	*f = out
	return nil
}
