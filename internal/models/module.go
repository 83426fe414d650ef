package models

import "time"

// Module is a taught unit that surveys, grades and attendance can be scoped to.
type Module struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModuleCode   string    `gorm:"size:32;uniqueIndex;not null" json:"module_code"`
	ModuleTitle  string    `gorm:"size:255;not null" json:"module_title"`
	Credit       int       `json:"credit"`
	AcademicYear string    `gorm:"size:16" json:"academic_year"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Enrolment links a student to a module.
type Enrolment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	ModuleID  uint      `gorm:"not null;index" json:"module_id"`
	EnrolDate time.Time `json:"enrol_date"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
