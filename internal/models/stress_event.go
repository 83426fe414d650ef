package models

import "time"

const (
	// StressCauseSystemDetected marks events derived automatically from a survey.
	StressCauseSystemDetected = "system_detected"
	// StressSourceSurveyResponse tags events emitted by the detection engine.
	StressSourceSurveyResponse = "survey_response_system"
)

// StressEvent flags that a single survey response reached the stress threshold.
// At most one active event exists per survey response.
type StressEvent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentID        uint      `gorm:"not null;index" json:"student_id"`
	ModuleID         *uint     `gorm:"index" json:"module_id"`
	SurveyResponseID uint      `gorm:"not null;uniqueIndex:idx_stress_events_active_survey,where:is_active = true" json:"survey_response_id"`
	WeekNumber       int       `gorm:"not null" json:"week_number"`
	StressLevel      int       `gorm:"not null" json:"stress_level"`
	CauseCategory    string    `gorm:"size:64;not null" json:"cause_category"`
	Description      string    `gorm:"type:text" json:"description"`
	Source           string    `gorm:"size:64;not null" json:"source"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
