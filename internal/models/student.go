package models

import "time"

// Student represents a learner whose wellbeing and engagement are tracked.
type Student struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentNumber string    `gorm:"size:64;uniqueIndex;not null" json:"student_number"`
	FullName      string    `gorm:"size:255;not null" json:"full_name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CourseName    string    `gorm:"size:255" json:"course_name"`
	YearOfStudy   int       `json:"year_of_study"`
	IsActive      bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
