package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// StressEventFilter narrows stress event listings.
type StressEventFilter struct {
	StudentID *uint
}

// StressEventRepository persists detected high-stress survey events.
type StressEventRepository interface {
	ExistsForSurvey(ctx context.Context, surveyResponseID uint) (bool, error)
	Create(ctx context.Context, event *models.StressEvent) error
	List(ctx context.Context, filter StressEventFilter) ([]models.StressEvent, error)
}

type stressEventRepository struct {
	db *gorm.DB
}

// NewStressEventRepository constructs the stress event repository.
func NewStressEventRepository(db *gorm.DB) StressEventRepository {
	return &stressEventRepository{db: db}
}

func (r *stressEventRepository) ExistsForSurvey(ctx context.Context, surveyResponseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StressEvent{}).
		Where("survey_response_id = ?", surveyResponseID).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the event and returns ErrDuplicate when an active event already covers the survey.
func (r *stressEventRepository) Create(ctx context.Context, event *models.StressEvent) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *stressEventRepository) List(ctx context.Context, filter StressEventFilter) ([]models.StressEvent, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	var events []models.StressEvent
	if err := query.Order("created_at DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
