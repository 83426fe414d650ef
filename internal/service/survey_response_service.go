package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
)

// ErrSurveyResponseNotFound indicates the survey does not exist or was deleted.
var ErrSurveyResponseNotFound = errors.New("survey response not found")

// SurveyResponseService records weekly surveys and runs detection on every write.
type SurveyResponseService interface {
	Create(ctx context.Context, payload dto.SurveyResponseRequest) (dto.SurveySubmissionResponse, error)
	Update(ctx context.Context, id uint, payload dto.SurveyResponseRequest) (dto.SurveySubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SurveyResponseResponse, error)
	List(ctx context.Context, req dto.SurveyListRequest) (dto.SurveyListResponse, error)
	Delete(ctx context.Context, id uint) error
}

type surveyResponseService struct {
	uow         repository.UnitOfWork
	surveys     repository.SurveyResponseRepository
	detector    StressDetector
	broadcaster AlertBroadcaster
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	threshold   int
	logger      zerolog.Logger
}

// NewSurveyResponseService constructs the survey service. broadcaster may be nil.
func NewSurveyResponseService(uow repository.UnitOfWork, surveys repository.SurveyResponseRepository, detector StressDetector, broadcaster AlertBroadcaster, validate *validator.Validate, threshold int, logger zerolog.Logger) SurveyResponseService {
	return &surveyResponseService{
		uow:         uow,
		surveys:     surveys,
		detector:    detector,
		broadcaster: broadcaster,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		threshold:   threshold,
		logger:      logger.With().Str("component", "survey_response_service").Logger(),
	}
}

func (s *surveyResponseService) Create(ctx context.Context, payload dto.SurveyResponseRequest) (dto.SurveySubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SurveySubmissionResponse{}, err
	}

	survey := models.SurveyResponse{IsActive: true}
	s.apply(&survey, payload)

	var detection DetectionResult
	err := s.uow.WithinTransaction(ctx, func(store repository.Store) error {
		if err := store.Surveys.Create(ctx, &survey); err != nil {
			return fmt.Errorf("create survey response: %w", err)
		}
		result, err := s.detector.Evaluate(ctx, store, survey, s.threshold)
		if err != nil {
			return err
		}
		detection = result
		return nil
	})
	if err != nil {
		return dto.SurveySubmissionResponse{}, err
	}

	s.announce(ctx, detection)
	return newSurveySubmissionResponse(survey, detection), nil
}

func (s *surveyResponseService) Update(ctx context.Context, id uint, payload dto.SurveyResponseRequest) (dto.SurveySubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SurveySubmissionResponse{}, err
	}

	var (
		survey    models.SurveyResponse
		detection DetectionResult
	)
	err := s.uow.WithinTransaction(ctx, func(store repository.Store) error {
		existing, err := store.Surveys.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSurveyResponseNotFound
			}
			return fmt.Errorf("load survey response: %w", err)
		}

		s.apply(&existing, payload)
		if err := store.Surveys.Update(ctx, &existing); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSurveyResponseNotFound
			}
			return fmt.Errorf("update survey response: %w", err)
		}

		result, err := s.detector.Evaluate(ctx, store, existing, s.threshold)
		if err != nil {
			return err
		}
		survey = existing
		detection = result
		return nil
	})
	if err != nil {
		return dto.SurveySubmissionResponse{}, err
	}

	s.announce(ctx, detection)
	return newSurveySubmissionResponse(survey, detection), nil
}

func (s *surveyResponseService) Get(ctx context.Context, id uint) (dto.SurveyResponseResponse, error) {
	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SurveyResponseResponse{}, ErrSurveyResponseNotFound
		}
		return dto.SurveyResponseResponse{}, err
	}
	return dto.NewSurveyResponseResponse(survey), nil
}

func (s *surveyResponseService) List(ctx context.Context, req dto.SurveyListRequest) (dto.SurveyListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	surveys, total, err := s.surveys.List(ctx, repository.SurveyResponseFilter{
		StudentID:  req.StudentID,
		ModuleID:   req.ModuleID,
		WeekNumber: req.WeekNumber,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return dto.SurveyListResponse{}, err
	}

	return dto.SurveyListResponse{
		Items:      dto.NewSurveyResponseSlice(surveys),
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *surveyResponseService) Delete(ctx context.Context, id uint) error {
	if err := s.surveys.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSurveyResponseNotFound
		}
		return err
	}
	return nil
}

func (s *surveyResponseService) apply(survey *models.SurveyResponse, payload dto.SurveyResponseRequest) {
	survey.StudentID = payload.StudentID
	survey.ModuleID = payload.ModuleID
	survey.WeekNumber = payload.WeekNumber
	survey.StressLevel = payload.StressLevel
	survey.HoursSlept = payload.HoursSlept
	survey.MoodComment = s.cleanComment(payload.MoodComment)
}

func (s *surveyResponseService) cleanComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(*comment))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func (s *surveyResponseService) announce(ctx context.Context, detection DetectionResult) {
	if detection.Alert == nil || s.broadcaster == nil {
		return
	}
	s.broadcaster.Broadcast(ctx, *detection.Alert)
}

func newSurveySubmissionResponse(survey models.SurveyResponse, detection DetectionResult) dto.SurveySubmissionResponse {
	outcome := dto.DetectionOutcome{
		StressEventCreated: detection.StressEvent != nil,
		AlertCreated:       detection.Alert != nil,
	}
	if detection.Alert != nil {
		id := detection.Alert.ID
		outcome.AlertID = &id
	}
	return dto.SurveySubmissionResponse{
		Survey:    dto.NewSurveyResponseResponse(survey),
		Detection: outcome,
	}
}
