package models

import "time"

// Stress levels accepted on a wellbeing survey.
const (
	MinStressLevel = 1
	MaxStressLevel = 5
)

// SurveyResponse captures one weekly wellbeing check-in for a student.
type SurveyResponse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index:idx_survey_student_module_week,priority:1" json:"student_id"`
	ModuleID    *uint     `gorm:"index:idx_survey_student_module_week,priority:2" json:"module_id"`
	WeekNumber  int       `gorm:"not null;index:idx_survey_student_module_week,priority:3" json:"week_number"`
	StressLevel int       `gorm:"not null" json:"stress_level"`
	HoursSlept  float64   `gorm:"not null" json:"hours_slept"`
	MoodComment *string   `gorm:"type:text" json:"mood_comment"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReachesStress reports whether the response meets or exceeds the given stress threshold.
func (s SurveyResponse) ReachesStress(threshold int) bool {
	return s.StressLevel >= threshold
}
