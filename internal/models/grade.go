package models

import "time"

// Grade is a numeric mark awarded for one assessment.
type Grade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;index" json:"student_id"`
	ModuleID       uint      `gorm:"not null;index" json:"module_id"`
	AssessmentName string    `gorm:"size:255;not null" json:"assessment_name"`
	Grade          float64   `gorm:"not null" json:"grade"`
	IsActive       bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
