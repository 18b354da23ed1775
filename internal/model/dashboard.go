package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamTypeAverage is the mean total score for one exam type.
type ExamTypeAverage struct {
	ExamType     string  `json:"exam_type"`
	Results      int     `json:"results"`
	AverageScore float64 `json:"average_score"`
}

// RecentExamResult is a dashboard row for a recently recorded exam.
type RecentExamResult struct {
	ID          uuid.UUID `json:"id"`
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	ClassName   string    `json:"class_name"`
	ExamType    string    `json:"exam_type"`
	ExamName    string    `json:"exam_name"`
	ExamDate    time.Time `json:"exam_date"`
	TotalScore  float64   `json:"total_score"`
}

// DashboardStats is the teacher dashboard payload.
type DashboardStats struct {
	TotalStudents    int                `json:"total_students"`
	TotalClasses     int                `json:"total_classes"`
	TotalExamResults int                `json:"total_exam_results"`
	TotalHomework    int                `json:"total_homework"`
	AverageScores    []ExamTypeAverage  `json:"average_scores"`
	RecentResults    []RecentExamResult `json:"recent_results"`
}
