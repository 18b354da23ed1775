package model

import "time"

// Class represents a class group owned by a teacher, e.g. 12-A.
type Class struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	GradeLevel   int       `json:"grade_level"`
	Section      string    `json:"section"`
	TeacherID    int       `json:"teacher_id"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	GradeLevel int    `json:"grade_level" binding:"required,min=5,max=12"`
	Section    string `json:"section" binding:"required,min=1,max=10"`
}
