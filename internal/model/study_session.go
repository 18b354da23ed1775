package model

import "time"

// StudySession is one block of self-reported study time.
type StudySession struct {
	ID              int       `json:"id"`
	StudentID       int       `json:"student_id"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	StudyDate       time.Time `json:"study_date"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateStudySessionRequest is the payload for logging study time.
type CreateStudySessionRequest struct {
	Subject         string `json:"subject" binding:"required,min=1,max=100"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440"`
	StudyDate       string `json:"study_date" binding:"required,datetime=2006-01-02"`
	Notes           string `json:"notes" binding:"omitempty,max=1000"`
}

// StudySubjectSummary aggregates study time per subject.
type StudySubjectSummary struct {
	Subject      string  `json:"subject"`
	TotalMinutes int     `json:"total_minutes"`
	Sessions     int     `json:"sessions"`
	Hours        float64 `json:"hours"`
}

// StudySummary is the per-subject breakdown over a trailing window of days.
type StudySummary struct {
	Days         int                   `json:"days"`
	TotalMinutes int                   `json:"total_minutes"`
	Subjects     []StudySubjectSummary `json:"subjects"`
}
