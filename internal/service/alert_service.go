package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
)

// ErrAlertNotFound indicates the alert does not exist or was deleted.
var ErrAlertNotFound = errors.New("alert not found")

// AlertService exposes staff workflows over raised alerts and stress events.
type AlertService interface {
	List(ctx context.Context, req dto.AlertListRequest) ([]dto.AlertResponse, error)
	Resolve(ctx context.Context, id uint) (dto.AlertResponse, error)
	Delete(ctx context.Context, id uint) error
	ListStressEvents(ctx context.Context, studentID *uint) ([]dto.StressEventResponse, error)
}

type alertService struct {
	alerts repository.AlertRepository
	events repository.StressEventRepository
	logger zerolog.Logger
}

// NewAlertService constructs the alert service.
func NewAlertService(alerts repository.AlertRepository, events repository.StressEventRepository, logger zerolog.Logger) AlertService {
	return &alertService{
		alerts: alerts,
		events: events,
		logger: logger.With().Str("component", "alert_service").Logger(),
	}
}

func (s *alertService) List(ctx context.Context, req dto.AlertListRequest) ([]dto.AlertResponse, error) {
	views, err := s.alerts.List(ctx, repository.AlertFilter{
		StudentID:      req.StudentID,
		UnresolvedOnly: req.UnresolvedOnly,
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.AlertResponse, 0, len(views))
	for _, view := range views {
		result = append(result, dto.NewNamedAlertResponse(view.Alert, view.StudentName, view.ModuleTitle))
	}
	return result, nil
}

func (s *alertService) Resolve(ctx context.Context, id uint) (dto.AlertResponse, error) {
	if err := s.alerts.MarkResolved(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AlertResponse{}, ErrAlertNotFound
		}
		return dto.AlertResponse{}, err
	}

	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AlertResponse{}, ErrAlertNotFound
		}
		return dto.AlertResponse{}, err
	}

	s.logger.Info().Uint("alert_id", id).Uint("student_id", alert.StudentID).Msg("alert resolved")
	return dto.NewAlertResponse(alert), nil
}

func (s *alertService) Delete(ctx context.Context, id uint) error {
	if err := s.alerts.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	s.logger.Info().Uint("alert_id", id).Msg("alert deleted")
	return nil
}

func (s *alertService) ListStressEvents(ctx context.Context, studentID *uint) ([]dto.StressEventResponse, error) {
	events, err := s.events.List(ctx, repository.StressEventFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	return dto.NewStressEventResponseSlice(events), nil
}
