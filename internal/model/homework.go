package model

import "time"

// Homework is an assignment a teacher gives to one class.
type Homework struct {
	ID          int        `json:"id"`
	ClassID     int        `json:"class_id"`
	TeacherID   int        `json:"teacher_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateHomeworkRequest is the payload for assigning homework.
type CreateHomeworkRequest struct {
	ClassID     int    `json:"class_id" binding:"required,min=1"`
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Subject     string `json:"subject" binding:"omitempty,max=100"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// StudentHomework is a homework item with the viewing student's completion state.
type StudentHomework struct {
	Homework
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HomeworkCompletion records one student finishing a homework item.
type HomeworkCompletion struct {
	StudentID     int       `json:"student_id"`
	StudentNumber string    `json:"student_number"`
	StudentName   string    `json:"student_name"`
	CompletedAt   time.Time `json:"completed_at"`
}
