package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	StudentID *uint
	ModuleID  *uint
}

// AttendanceRecordRepository persists weekly attendance records.
type AttendanceRecordRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Save(ctx context.Context, record *models.AttendanceRecord) error
	GetByID(ctx context.Context, id uint) (models.AttendanceRecord, error)
	List(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error)
}

type attendanceRecordRepository struct {
	db *gorm.DB
}

// NewAttendanceRecordRepository constructs the attendance repository.
func NewAttendanceRecordRepository(db *gorm.DB) AttendanceRecordRepository {
	return &attendanceRecordRepository{db: db}
}

func (r *attendanceRecordRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRecordRepository) Save(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *attendanceRecordRepository) GetByID(ctx context.Context, id uint) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("is_active = ?", true).
		First(&record).Error
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return record, nil
}

func (r *attendanceRecordRepository) List(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ModuleID != nil {
		query = query.Where("module_id = ?", *filter.ModuleID)
	}

	var records []models.AttendanceRecord
	if err := query.Order("week_number ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
