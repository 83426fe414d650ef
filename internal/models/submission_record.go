package models

import "time"

// SubmissionRecord tracks whether an assessment was handed in and on time.
type SubmissionRecord struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"not null;index" json:"student_id"`
	ModuleID       uint       `gorm:"not null;index" json:"module_id"`
	AssessmentName string     `gorm:"size:255;not null" json:"assessment_name"`
	DueDate        time.Time  `gorm:"not null" json:"due_date"`
	SubmittedDate  *time.Time `json:"submitted_date"`
	IsSubmitted    bool       `gorm:"not null" json:"is_submitted"`
	IsLate         bool       `gorm:"not null" json:"is_late"`
	IsActive       bool       `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
