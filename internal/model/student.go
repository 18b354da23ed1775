package model

import "time"

// Student represents a student account. Parents log in against the same
// record using the student number and a separate PIN.
type Student struct {
	ID            int       `json:"id"`
	StudentNumber string    `json:"student_number"`
	Name          string    `json:"name"`
	ClassID       int       `json:"class_id"`
	TargetExam    string    `json:"target_exam"`
	PasswordHash  string    `json:"-"`
	ParentPINHash string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=3,max=20"`
	Password      string `json:"password" binding:"required,min=4,max=128"`
}

// ParentLoginRequest is the payload for parent authentication.
type ParentLoginRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=3,max=20"`
	PIN           string `json:"pin" binding:"required,numeric,len=6"`
}

// LoginResponse is returned after a student or parent login.
type LoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// CreateStudentRequest is the payload teachers use to enrol a student.
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=3,max=20"`
	Name          string `json:"name" binding:"required,min=2,max=255"`
	ClassID       int    `json:"class_id" binding:"required,min=1"`
	TargetExam    string `json:"target_exam" binding:"omitempty,exam_type"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
	ParentPIN     string `json:"parent_pin" binding:"omitempty,numeric,len=6"`
}

// UpdateStudentRequest is the payload for editing a student. Empty secrets
// leave the stored hashes untouched.
type UpdateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=3,max=20"`
	Name          string `json:"name" binding:"required,min=2,max=255"`
	ClassID       int    `json:"class_id" binding:"required,min=1"`
	TargetExam    string `json:"target_exam" binding:"omitempty,exam_type"`
	Password      string `json:"password" binding:"omitempty,min=6,max=128"`
	ParentPIN     string `json:"parent_pin" binding:"omitempty,numeric,len=6"`
}
