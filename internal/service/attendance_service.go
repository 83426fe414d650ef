package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
)

// ErrAttendanceNotFound indicates the attendance record does not exist or was deleted.
var ErrAttendanceNotFound = errors.New("attendance record not found")

// AttendanceService records weekly attendance.
type AttendanceService interface {
	Create(ctx context.Context, payload dto.AttendanceRequest) (dto.AttendanceResponse, error)
	Update(ctx context.Context, id uint, payload dto.AttendanceRequest) (dto.AttendanceResponse, error)
	List(ctx context.Context, studentID, moduleID *uint) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRecordRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRecordRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Create(ctx context.Context, payload dto.AttendanceRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}

	record := models.AttendanceRecord{IsActive: true}
	applyAttendance(&record, payload)
	if err := s.repo.Create(ctx, &record); err != nil {
		return dto.AttendanceResponse{}, err
	}

	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) Update(ctx context.Context, id uint, payload dto.AttendanceRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceResponse{}, err
	}

	applyAttendance(&record, payload)
	if err := s.repo.Save(ctx, &record); err != nil {
		return dto.AttendanceResponse{}, err
	}

	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) List(ctx context.Context, studentID, moduleID *uint) ([]dto.AttendanceResponse, error) {
	records, err := s.repo.List(ctx, repository.AttendanceFilter{StudentID: studentID, ModuleID: moduleID})
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceResponseSlice(records), nil
}

func applyAttendance(record *models.AttendanceRecord, payload dto.AttendanceRequest) {
	record.StudentID = payload.StudentID
	record.ModuleID = payload.ModuleID
	record.WeekNumber = payload.WeekNumber
	record.AttendedSessions = payload.AttendedSessions
	record.TotalSessions = payload.TotalSessions
	record.RecomputeRate()
}
