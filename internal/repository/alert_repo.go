package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// AlertFilter narrows alert listings.
type AlertFilter struct {
	StudentID      *uint
	UnresolvedOnly bool
}

// AlertView is an alert joined with the student and module names for staff listings.
type AlertView struct {
	models.Alert
	StudentName string
	ModuleTitle *string
}

// AlertRepository persists consecutive-week stress alerts.
type AlertRepository interface {
	ExistsForStudentWeek(ctx context.Context, studentID uint, week int) (bool, error)
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, filter AlertFilter) ([]AlertView, error)
	GetByID(ctx context.Context, id uint) (models.Alert, error)
	MarkResolved(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) error
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository constructs the alert repository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) ExistsForStudentWeek(ctx context.Context, studentID uint, week int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("student_id = ?", studentID).
		Where("week_number = ?", week).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the alert and returns ErrDuplicate when an active alert already covers the student and week.
func (r *alertRepository) Create(ctx context.Context, alert *models.Alert) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(alert)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, filter AlertFilter) ([]AlertView, error) {
	query := r.db.WithContext(ctx).
		Table("alerts AS a").
		Select("a.*, s.full_name AS student_name, m.module_title AS module_title").
		Joins("JOIN students s ON s.id = a.student_id").
		Joins("LEFT JOIN modules m ON m.id = a.module_id").
		Where("a.is_active = ?", true)

	if filter.StudentID != nil {
		query = query.Where("a.student_id = ?", *filter.StudentID)
	}
	if filter.UnresolvedOnly {
		query = query.Where("a.resolved = ?", false)
	}

	var alerts []AlertView
	if err := query.Order("a.created_at DESC").Order("a.id DESC").Scan(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (models.Alert, error) {
	var alert models.Alert
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("is_active = ?", true).
		First(&alert).Error
	if err != nil {
		return models.Alert{}, err
	}
	return alert, nil
}

func (r *alertRepository) MarkResolved(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Update("resolved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alertRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Alert{}).
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
