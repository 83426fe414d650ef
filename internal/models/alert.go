package models

import (
	"time"

	"gorm.io/datatypes"
)

// Alert is a staff-facing flag raised after consecutive high-stress weeks.
// At most one active alert exists per student and week.
type Alert struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	StudentID  uint              `gorm:"not null;uniqueIndex:idx_alerts_active_student_week,priority:1,where:is_active = true" json:"student_id"`
	ModuleID   *uint             `gorm:"index" json:"module_id"`
	WeekNumber int               `gorm:"not null;uniqueIndex:idx_alerts_active_student_week,priority:2,where:is_active = true" json:"week_number"`
	Reason     string            `gorm:"type:text;not null" json:"reason"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details"`
	Resolved   bool              `gorm:"not null;index" json:"resolved"`
	IsActive   bool              `gorm:"not null;index" json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
