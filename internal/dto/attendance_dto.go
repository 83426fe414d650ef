package dto

import (
	"time"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// AttendanceRequest records attendance for one student, module and week.
type AttendanceRequest struct {
	StudentID        uint `json:"student_id" validate:"required"`
	ModuleID         uint `json:"module_id" validate:"required"`
	WeekNumber       int  `json:"week_number" validate:"required,min=1,max=52"`
	AttendedSessions int  `json:"attended_sessions" validate:"min=0,ltefield=TotalSessions"`
	TotalSessions    int  `json:"total_sessions" validate:"min=0"`
}

// AttendanceResponse serializes an attendance record.
type AttendanceResponse struct {
	ID               uint      `json:"id"`
	StudentID        uint      `json:"student_id"`
	ModuleID         uint      `json:"module_id"`
	WeekNumber       int       `json:"week_number"`
	AttendedSessions int       `json:"attended_sessions"`
	TotalSessions    int       `json:"total_sessions"`
	AttendanceRate   float64   `json:"attendance_rate"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewAttendanceResponse converts an attendance model into a DTO.
func NewAttendanceResponse(model models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:               model.ID,
		StudentID:        model.StudentID,
		ModuleID:         model.ModuleID,
		WeekNumber:       model.WeekNumber,
		AttendedSessions: model.AttendedSessions,
		TotalSessions:    model.TotalSessions,
		AttendanceRate:   model.AttendanceRate,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewAttendanceResponseSlice converts attendance models into DTOs.
func NewAttendanceResponseSlice(items []models.AttendanceRecord) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(items))
	for _, item := range items {
		result = append(result, NewAttendanceResponse(item))
	}
	return result
}
