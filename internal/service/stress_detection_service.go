package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/observability"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
)

// DefaultStressThreshold is the stress level at or above which a survey counts as high stress.
const DefaultStressThreshold = 4

// ErrDetectionFailed reports that the store failed while evaluating a survey.
var ErrDetectionFailed = errors.New("stress detection failed")

// DetectionResult lists the records the detector inserted for one survey.
type DetectionResult struct {
	StressEvent *models.StressEvent
	Alert       *models.Alert
}

// StressDetector derives stress events and consecutive-week alerts from a written survey.
type StressDetector interface {
	Evaluate(ctx context.Context, store repository.Store, survey models.SurveyResponse, threshold int) (DetectionResult, error)
}

type stressDetector struct {
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewStressDetector constructs the detection engine.
func NewStressDetector(logger zerolog.Logger) StressDetector {
	return &stressDetector{
		logger: logger.With().Str("component", "stress_detector").Logger(),
		tracer: otel.Tracer("github.com/Zayne-Feng/group-assessment-v3/internal/service/stress_detection"),
	}
}

// Evaluate runs the stress-event check and then the alert check against store.
// Both checks always run; their failures are joined under ErrDetectionFailed.
func (d *stressDetector) Evaluate(ctx context.Context, store repository.Store, survey models.SurveyResponse, threshold int) (DetectionResult, error) {
	if threshold <= 0 {
		threshold = DefaultStressThreshold
	}

	ctx, span := d.tracer.Start(ctx, "detection.evaluate", trace.WithAttributes(
		attribute.Int64("survey.id", int64(survey.ID)),
		attribute.Int64("survey.student_id", int64(survey.StudentID)),
		attribute.Int("survey.week_number", survey.WeekNumber),
		attribute.Int("survey.stress_level", survey.StressLevel),
		attribute.Int("detection.threshold", threshold),
	))
	defer span.End()

	var (
		result DetectionResult
		errs   []error
	)

	event, err := d.checkStressEvent(ctx, store, survey, threshold)
	if err != nil {
		errs = append(errs, fmt.Errorf("stress event check: %w", err))
	}
	result.StressEvent = event

	alert, err := d.checkAlert(ctx, store, survey, threshold)
	if err != nil {
		errs = append(errs, fmt.Errorf("alert check: %w", err))
	}
	result.Alert = alert

	span.SetAttributes(
		attribute.Bool("detection.stress_event_created", result.StressEvent != nil),
		attribute.Bool("detection.alert_created", result.Alert != nil),
	)

	if len(errs) > 0 {
		err := fmt.Errorf("%w: %w", ErrDetectionFailed, errors.Join(errs...))
		observability.DetectionFailures().Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "detection_failed")
		d.logger.Error().Err(err).
			Uint("survey_response_id", survey.ID).
			Uint("student_id", survey.StudentID).
			Msg("stress detection failed")
		return DetectionResult{}, err
	}

	return result, nil
}

func (d *stressDetector) checkStressEvent(ctx context.Context, store repository.Store, survey models.SurveyResponse, threshold int) (*models.StressEvent, error) {
	if !survey.ReachesStress(threshold) {
		return nil, nil
	}

	exists, err := store.StressEvents.ExistsForSurvey(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		d.skipDuplicate("stress_event", survey)
		return nil, nil
	}

	event := &models.StressEvent{
		StudentID:        survey.StudentID,
		ModuleID:         survey.ModuleID,
		SurveyResponseID: survey.ID,
		WeekNumber:       survey.WeekNumber,
		StressLevel:      survey.StressLevel,
		CauseCategory:    models.StressCauseSystemDetected,
		Description:      fmt.Sprintf("High stress reported (level %d) in week %d.", survey.StressLevel, survey.WeekNumber),
		Source:           models.StressSourceSurveyResponse,
		IsActive:         true,
	}
	if err := store.StressEvents.Create(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			d.skipDuplicate("stress_event", survey)
			return nil, nil
		}
		return nil, err
	}

	observability.StressEventsCreated().Inc()
	d.logger.Info().
		Uint("student_id", survey.StudentID).
		Int("stress_level", survey.StressLevel).
		Int("week_number", survey.WeekNumber).
		Msg("stress event created")

	return event, nil
}

func (d *stressDetector) checkAlert(ctx context.Context, store repository.Store, survey models.SurveyResponse, threshold int) (*models.Alert, error) {
	// A survey without a module has nothing to pair with.
	if !survey.ReachesStress(threshold) || survey.ModuleID == nil || survey.WeekNumber <= 1 {
		return nil, nil
	}

	previousWeek := survey.WeekNumber - 1
	previous, err := store.Surveys.FindByWeek(ctx, survey.StudentID, survey.ModuleID, previousWeek)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !previous.ReachesStress(threshold) {
		return nil, nil
	}

	exists, err := store.Alerts.ExistsForStudentWeek(ctx, survey.StudentID, survey.WeekNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		d.skipDuplicate("alert", survey)
		return nil, nil
	}

	moduleID := *survey.ModuleID
	alert := &models.Alert{
		StudentID:  survey.StudentID,
		ModuleID:   survey.ModuleID,
		WeekNumber: survey.WeekNumber,
		Reason: fmt.Sprintf("Stress level >= %d for two consecutive weeks (%d and %d) for student %d in module %d.",
			threshold, previousWeek, survey.WeekNumber, survey.StudentID, moduleID),
		Details: datatypes.JSONMap{
			"threshold":          threshold,
			"previous_week":      previousWeek,
			"current_week":       survey.WeekNumber,
			"module_id":          moduleID,
			"previous_survey_id": previous.ID,
			"survey_response_id": survey.ID,
		},
		IsActive: true,
	}
	if err := store.Alerts.Create(ctx, alert); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			d.skipDuplicate("alert", survey)
			return nil, nil
		}
		return nil, err
	}

	observability.AlertsCreated().Inc()
	d.logger.Warn().
		Uint("student_id", survey.StudentID).
		Uint("module_id", moduleID).
		Int("week_number", survey.WeekNumber).
		Msg("consecutive high stress alert created")

	return alert, nil
}

func (d *stressDetector) skipDuplicate(kind string, survey models.SurveyResponse) {
	observability.DetectionDuplicates().WithLabelValues(kind).Inc()
	d.logger.Debug().
		Str("kind", kind).
		Uint("survey_response_id", survey.ID).
		Uint("student_id", survey.StudentID).
		Int("week_number", survey.WeekNumber).
		Msg("active record already exists, skipping")
}
