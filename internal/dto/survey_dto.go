package dto

import (
	"time"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// SurveyResponseRequest is the payload for creating or replacing a weekly survey.
type SurveyResponseRequest struct {
	StudentID   uint    `json:"student_id" validate:"required"`
	ModuleID    *uint   `json:"module_id" validate:"omitempty,min=1"`
	WeekNumber  int     `json:"week_number" validate:"required,min=1,max=52"`
	StressLevel int     `json:"stress_level" validate:"required,min=1,max=5"`
	HoursSlept  float64 `json:"hours_slept" validate:"min=0,max=24"`
	MoodComment *string `json:"mood_comment" validate:"omitempty,max=2000"`
}

// SurveyListRequest filters the survey listing.
type SurveyListRequest struct {
	StudentID  *uint
	ModuleID   *uint
	WeekNumber *int
	Page       int
	PageSize   int
}

// SurveyResponseResponse serializes a stored survey.
type SurveyResponseResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	ModuleID    *uint     `json:"module_id"`
	WeekNumber  int       `json:"week_number"`
	StressLevel int       `json:"stress_level"`
	HoursSlept  float64   `json:"hours_slept"`
	MoodComment *string   `json:"mood_comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DetectionOutcome reports what the detector produced for a survey write.
type DetectionOutcome struct {
	StressEventCreated bool  `json:"stress_event_created"`
	AlertCreated       bool  `json:"alert_created"`
	AlertID            *uint `json:"alert_id,omitempty"`
}

// SurveySubmissionResponse is returned after a survey write.
type SurveySubmissionResponse struct {
	Survey    SurveyResponseResponse `json:"survey"`
	Detection DetectionOutcome       `json:"detection"`
}

// SurveyListResponse wraps a paginated survey listing.
type SurveyListResponse struct {
	Items      []SurveyResponseResponse `json:"items"`
	Pagination PaginationMeta           `json:"pagination"`
}

// NewSurveyResponseResponse converts a survey model into a DTO.
func NewSurveyResponseResponse(model models.SurveyResponse) SurveyResponseResponse {
	return SurveyResponseResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		ModuleID:    model.ModuleID,
		WeekNumber:  model.WeekNumber,
		StressLevel: model.StressLevel,
		HoursSlept:  model.HoursSlept,
		MoodComment: model.MoodComment,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewSurveyResponseSlice converts survey models into DTOs.
func NewSurveyResponseSlice(items []models.SurveyResponse) []SurveyResponseResponse {
	result := make([]SurveyResponseResponse, 0, len(items))
	for _, item := range items {
		result = append(result, NewSurveyResponseResponse(item))
	}
	return result
}
