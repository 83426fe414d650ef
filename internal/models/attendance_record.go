package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceRecord stores weekly session attendance for a student in a module.
type AttendanceRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentID        uint      `gorm:"not null;index" json:"student_id"`
	ModuleID         uint      `gorm:"not null;index" json:"module_id"`
	WeekNumber       int       `gorm:"not null" json:"week_number"`
	AttendedSessions int       `gorm:"not null" json:"attended_sessions"`
	TotalSessions    int       `gorm:"not null" json:"total_sessions"`
	AttendanceRate   float64   `gorm:"not null" json:"attendance_rate"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RecomputeRate refreshes the stored attendance ratio from the session counts.
func (a *AttendanceRecord) RecomputeRate() {
	if a.TotalSessions > 0 {
		a.AttendanceRate = float64(a.AttendedSessions) / float64(a.TotalSessions)
		return
	}
	a.AttendanceRate = 0
}

// BeforeSave keeps the derived rate in sync on every create and save.
func (a *AttendanceRecord) BeforeSave(_ *gorm.DB) error {
	a.RecomputeRate()
	return nil
}
