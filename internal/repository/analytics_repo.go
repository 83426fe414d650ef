package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// WeeklyAverage is a per-week mean of some student metric.
type WeeklyAverage struct {
	WeekNumber int
	Average    *float64
}

// StudentAverage is a per-student mean of some metric.
type StudentAverage struct {
	StudentID uint
	FullName  string
	Average   float64
}

// StudentStressGrade pairs a student's mean stress with their mean grade.
type StudentStressGrade struct {
	StudentID     uint
	FullName      string
	AverageStress float64
	AverageGrade  float64
}

// ModuleAverage is a mean of some metric across modules sharing a title.
type ModuleAverage struct {
	ModuleTitle string
	Average     float64
}

// SubmissionCountFilter selects submission records by status flags.
type SubmissionCountFilter struct {
	IsSubmitted *bool
	IsLate      *bool
}

// AnalyticsRepository runs the aggregation queries behind the wellbeing analytics.
// Every query only considers active rows.
type AnalyticsRepository interface {
	WeeklyStressAverages(ctx context.Context, studentID uint) ([]WeeklyAverage, error)
	WeeklyAttendanceAverages(ctx context.Context, studentID uint) ([]WeeklyAverage, error)
	AverageAttendanceRate(ctx context.Context, studentID *uint) (*float64, error)
	StudentGradeAverages(ctx context.Context) ([]StudentAverage, error)
	StudentStressGradeAverages(ctx context.Context) ([]StudentStressGrade, error)
	CountActiveStudents(ctx context.Context) (int64, error)
	CountActiveModules(ctx context.Context) (int64, error)
	CountPendingAlerts(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountSubmissions(ctx context.Context, filter SubmissionCountFilter) (int64, error)
	StudentsBelowAttendance(ctx context.Context, percent float64) ([]StudentAverage, error)
	StudentsBelowGrade(ctx context.Context, grade float64) ([]StudentAverage, error)
	StudentsAtOrAboveStress(ctx context.Context, level float64) ([]StudentAverage, error)
	ModuleStressAverages(ctx context.Context) ([]ModuleAverage, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository constructs the analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) WeeklyStressAverages(ctx context.Context, studentID uint) ([]WeeklyAverage, error) {
	var rows []WeeklyAverage
	err := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Select("week_number, AVG(stress_level) AS average").
		Where("student_id = ?", studentID).
		Where("is_active = ?", true).
		Group("week_number").
		Order("week_number ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) WeeklyAttendanceAverages(ctx context.Context, studentID uint) ([]WeeklyAverage, error) {
	var rows []WeeklyAverage
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Select("week_number, AVG(attendance_rate) AS average").
		Where("student_id = ?", studentID).
		Where("is_active = ?", true).
		Group("week_number").
		Order("week_number ASC").
		Scan(&rows).Error
	return rows, err
}

// AverageAttendanceRate returns the mean stored rate, for one student or across everyone when studentID is nil.
// A nil result means there were no active records.
func (r *analyticsRepository) AverageAttendanceRate(ctx context.Context, studentID *uint) (*float64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Select("AVG(attendance_rate)").
		Where("is_active = ?", true)
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var avg sql.NullFloat64
	if err := query.Row().Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	value := avg.Float64
	return &value, nil
}

func (r *analyticsRepository) StudentGradeAverages(ctx context.Context) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.full_name AS full_name, AVG(g.grade) AS average").
		Joins("JOIN grades g ON g.student_id = s.id AND g.is_active = ?", true).
		Where("s.is_active = ?", true).
		Group("s.id, s.full_name").
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}

// StudentStressGradeAverages pairs per-student means computed independently so that
// neither side is weighted by the row count of the other.
func (r *analyticsRepository) StudentStressGradeAverages(ctx context.Context) ([]StudentStressGrade, error) {
	stress := r.db.
		Model(&models.SurveyResponse{}).
		Select("student_id, AVG(stress_level) AS average_stress").
		Where("is_active = ?", true).
		Group("student_id")
	grades := r.db.
		Model(&models.Grade{}).
		Select("student_id, AVG(grade) AS average_grade").
		Where("is_active = ?", true).
		Group("student_id")

	var rows []StudentStressGrade
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.full_name AS full_name, st.average_stress AS average_stress, gr.average_grade AS average_grade").
		Joins("JOIN (?) AS st ON st.student_id = s.id", stress).
		Joins("JOIN (?) AS gr ON gr.student_id = s.id", grades).
		Where("s.is_active = ?", true).
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	return r.countActive(ctx, &models.Student{})
}

func (r *analyticsRepository) CountActiveModules(ctx context.Context) (int64, error) {
	return r.countActive(ctx, &models.Module{})
}

func (r *analyticsRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	return r.countActive(ctx, &models.User{})
}

func (r *analyticsRepository) CountPendingAlerts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("is_active = ?", true).
		Where("resolved = ?", false).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountSubmissions(ctx context.Context, filter SubmissionCountFilter) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SubmissionRecord{}).
		Where("is_active = ?", true)
	if filter.IsSubmitted != nil {
		query = query.Where("is_submitted = ?", *filter.IsSubmitted)
	}
	if filter.IsLate != nil {
		query = query.Where("is_late = ?", *filter.IsLate)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *analyticsRepository) StudentsBelowAttendance(ctx context.Context, percent float64) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.full_name AS full_name, AVG(ar.attendance_rate) * 100 AS average").
		Joins("JOIN attendance_records ar ON ar.student_id = s.id AND ar.is_active = ?", true).
		Where("s.is_active = ?", true).
		Group("s.id, s.full_name").
		Having("AVG(ar.attendance_rate) * 100 < ?", percent).
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) StudentsBelowGrade(ctx context.Context, grade float64) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.full_name AS full_name, AVG(g.grade) AS average").
		Joins("JOIN grades g ON g.student_id = s.id AND g.is_active = ?", true).
		Where("s.is_active = ?", true).
		Group("s.id, s.full_name").
		Having("AVG(g.grade) < ?", grade).
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) StudentsAtOrAboveStress(ctx context.Context, level float64) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.full_name AS full_name, AVG(sr.stress_level) AS average").
		Joins("JOIN survey_responses sr ON sr.student_id = s.id AND sr.is_active = ?", true).
		Where("s.is_active = ?", true).
		Group("s.id, s.full_name").
		Having("AVG(sr.stress_level) >= ?", level).
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ModuleStressAverages(ctx context.Context) ([]ModuleAverage, error) {
	var rows []ModuleAverage
	err := r.db.WithContext(ctx).
		Table("modules AS m").
		Select("m.module_title AS module_title, AVG(sr.stress_level) AS average").
		Joins("JOIN survey_responses sr ON sr.module_id = m.id AND sr.is_active = ?", true).
		Where("m.is_active = ?", true).
		Group("m.module_title").
		Order("average DESC").
		Order("module_title ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) countActive(ctx context.Context, model interface{}) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
