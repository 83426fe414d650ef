package dto

import (
	"time"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// AlertResponse serializes an alert for staff.
type AlertResponse struct {
	ID          uint                   `json:"id"`
	StudentID   uint                   `json:"student_id"`
	StudentName string                 `json:"student_name,omitempty"`
	ModuleID    *uint                  `json:"module_id"`
	ModuleTitle *string                `json:"module_title,omitempty"`
	WeekNumber  int                    `json:"week_number"`
	Reason      string                 `json:"reason"`
	Details     map[string]interface{} `json:"details"`
	Resolved    bool                   `json:"resolved"`
	CreatedAt   time.Time              `json:"created_at"`
}

// StressEventResponse serializes a detected stress event.
type StressEventResponse struct {
	ID               uint      `json:"id"`
	StudentID        uint      `json:"student_id"`
	ModuleID         *uint     `json:"module_id"`
	SurveyResponseID uint      `json:"survey_response_id"`
	WeekNumber       int       `json:"week_number"`
	StressLevel      int       `json:"stress_level"`
	CauseCategory    string    `json:"cause_category"`
	Description      string    `json:"description"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewAlertResponse converts an alert model into a DTO.
func NewAlertResponse(model models.Alert) AlertResponse {
	details := map[string]interface{}(model.Details)
	if details == nil {
		details = map[string]interface{}{}
	}
	return AlertResponse{
		ID:         model.ID,
		StudentID:  model.StudentID,
		ModuleID:   model.ModuleID,
		WeekNumber: model.WeekNumber,
		Reason:     model.Reason,
		Details:    details,
		Resolved:   model.Resolved,
		CreatedAt:  model.CreatedAt,
	}
}

// NewNamedAlertResponse converts an alert joined with its student and module names.
func NewNamedAlertResponse(model models.Alert, studentName string, moduleTitle *string) AlertResponse {
	response := NewAlertResponse(model)
	response.StudentName = studentName
	response.ModuleTitle = moduleTitle
	return response
}

// NewStressEventResponse converts a stress event model into a DTO.
func NewStressEventResponse(model models.StressEvent) StressEventResponse {
	return StressEventResponse{
		ID:               model.ID,
		StudentID:        model.StudentID,
		ModuleID:         model.ModuleID,
		SurveyResponseID: model.SurveyResponseID,
		WeekNumber:       model.WeekNumber,
		StressLevel:      model.StressLevel,
		CauseCategory:    model.CauseCategory,
		Description:      model.Description,
		Source:           model.Source,
		CreatedAt:        model.CreatedAt,
	}
}

// NewStressEventResponseSlice converts stress events into DTOs.
func NewStressEventResponseSlice(items []models.StressEvent) []StressEventResponse {
	result := make([]StressEventResponse, 0, len(items))
	for _, item := range items {
		result = append(result, NewStressEventResponse(item))
	}
	return result
}

// AlertListRequest filters the alert listing.
type AlertListRequest struct {
	StudentID      *uint
	UnresolvedOnly bool
}
