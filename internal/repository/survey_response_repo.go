package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// SurveyResponseFilter narrows survey listings.
type SurveyResponseFilter struct {
	StudentID  *uint
	ModuleID   *uint
	WeekNumber *int
	Page       int
	PageSize   int
}

// SurveyResponseRepository persists weekly wellbeing surveys.
type SurveyResponseRepository interface {
	List(ctx context.Context, filter SurveyResponseFilter) ([]models.SurveyResponse, int64, error)
	GetByID(ctx context.Context, id uint) (models.SurveyResponse, error)
	FindByWeek(ctx context.Context, studentID uint, moduleID *uint, week int) (models.SurveyResponse, error)
	Create(ctx context.Context, survey *models.SurveyResponse) error
	Update(ctx context.Context, survey *models.SurveyResponse) error
	SoftDelete(ctx context.Context, id uint) error
}

type surveyResponseRepository struct {
	db *gorm.DB
}

// NewSurveyResponseRepository constructs the survey repository.
func NewSurveyResponseRepository(db *gorm.DB) SurveyResponseRepository {
	return &surveyResponseRepository{db: db}
}

func (r *surveyResponseRepository) List(ctx context.Context, filter SurveyResponseFilter) ([]models.SurveyResponse, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyResponse{}).Where("is_active = ?", true)

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ModuleID != nil {
		query = query.Where("module_id = ?", *filter.ModuleID)
	}
	if filter.WeekNumber != nil {
		query = query.Where("week_number = ?", *filter.WeekNumber)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("student_id ASC").Order("week_number ASC").Order("id ASC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var surveys []models.SurveyResponse
	if err := query.Find(&surveys).Error; err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

func (r *surveyResponseRepository) GetByID(ctx context.Context, id uint) (models.SurveyResponse, error) {
	var survey models.SurveyResponse
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("is_active = ?", true).
		First(&survey).Error
	if err != nil {
		return models.SurveyResponse{}, err
	}
	return survey, nil
}

// FindByWeek returns the most recent active survey for the student, module and week.
// A nil module matches only surveys recorded without a module.
func (r *surveyResponseRepository) FindByWeek(ctx context.Context, studentID uint, moduleID *uint, week int) (models.SurveyResponse, error) {
	query := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("week_number = ?", week).
		Where("is_active = ?", true)
	if moduleID != nil {
		query = query.Where("module_id = ?", *moduleID)
	} else {
		query = query.Where("module_id IS NULL")
	}

	// Find with a limit keeps a missing previous week out of the gorm error log.
	var surveys []models.SurveyResponse
	result := query.Order("id DESC").Limit(1).Find(&surveys)
	if result.Error != nil {
		return models.SurveyResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SurveyResponse{}, gorm.ErrRecordNotFound
	}
	return surveys[0], nil
}

func (r *surveyResponseRepository) Create(ctx context.Context, survey *models.SurveyResponse) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

func (r *surveyResponseRepository) Update(ctx context.Context, survey *models.SurveyResponse) error {
	result := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Where("id = ?", survey.ID).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{
			"student_id":   survey.StudentID,
			"module_id":    survey.ModuleID,
			"week_number":  survey.WeekNumber,
			"stress_level": survey.StressLevel,
			"hours_slept":  survey.HoursSlept,
			"mood_comment": survey.MoodComment,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *surveyResponseRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
