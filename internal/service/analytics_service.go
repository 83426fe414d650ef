package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
)

// Grade band labels, lowest first.
var gradeBands = []string{
	"Fail (<40)",
	"Pass (40-49)",
	"Merit (50-59)",
	"Distinction (60-69)",
	"Excellent (70+)",
}

// Submission status labels.
var submissionStatuses = []string{
	"Submitted On Time",
	"Submitted Late",
	"Not Submitted",
}

// AnalyticsService aggregates wellbeing and academic data for staff dashboards.
type AnalyticsService interface {
	StressTrend(ctx context.Context, studentID uint) (dto.TrendSeries, error)
	AttendanceTrend(ctx context.Context, studentID uint) (dto.TrendSeries, error)
	AverageAttendance(ctx context.Context, studentID uint) (dto.AverageAttendance, error)
	OverallAttendanceRate(ctx context.Context) (dto.AverageAttendance, error)
	GradeDistribution(ctx context.Context) (dto.Distribution, error)
	StressGradeCorrelation(ctx context.Context) (dto.Correlation, error)
	DashboardSummary(ctx context.Context) (dto.DashboardSummary, error)
	SubmissionStatusDistribution(ctx context.Context) (dto.Distribution, error)
	HighRiskStudents(ctx context.Context, thresholds RiskThresholds) ([]dto.HighRiskStudent, error)
	StressByModule(ctx context.Context) (dto.TrendSeries, error)
}

type analyticsService struct {
	repo   repository.AnalyticsRepository
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewAnalyticsService constructs the analytics service. Every read goes to the repository.
func NewAnalyticsService(repo repository.AnalyticsRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger.With().Str("component", "analytics_service").Logger(),
		tracer: otel.Tracer("github.com/Zayne-Feng/group-assessment-v3/internal/service/analytics"),
	}
}

func (s *analyticsService) StressTrend(ctx context.Context, studentID uint) (dto.TrendSeries, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.stress_trend", trace.WithAttributes(attribute.Int64("student.id", int64(studentID))))
	defer span.End()

	rows, err := s.repo.WeeklyStressAverages(ctx, studentID)
	if err != nil {
		return dto.TrendSeries{}, failSpan(span, err, "weekly_stress_failed")
	}

	series := newTrendSeries(len(rows))
	for _, row := range rows {
		series.Labels = append(series.Labels, weekLabel(row.WeekNumber))
		series.Data = append(series.Data, roundTo2(valueOrZero(row.Average)))
	}
	return series, nil
}

func (s *analyticsService) AttendanceTrend(ctx context.Context, studentID uint) (dto.TrendSeries, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.attendance_trend", trace.WithAttributes(attribute.Int64("student.id", int64(studentID))))
	defer span.End()

	rows, err := s.repo.WeeklyAttendanceAverages(ctx, studentID)
	if err != nil {
		return dto.TrendSeries{}, failSpan(span, err, "weekly_attendance_failed")
	}

	series := newTrendSeries(len(rows))
	for _, row := range rows {
		series.Labels = append(series.Labels, weekLabel(row.WeekNumber))
		series.Data = append(series.Data, roundTo2(valueOrZero(row.Average)*100))
	}
	return series, nil
}

func (s *analyticsService) AverageAttendance(ctx context.Context, studentID uint) (dto.AverageAttendance, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.average_attendance", trace.WithAttributes(attribute.Int64("student.id", int64(studentID))))
	defer span.End()

	avg, err := s.repo.AverageAttendanceRate(ctx, &studentID)
	if err != nil {
		return dto.AverageAttendance{}, failSpan(span, err, "average_attendance_failed")
	}

	id := studentID
	return dto.AverageAttendance{StudentID: &id, AverageAttendance: roundTo2(valueOrZero(avg) * 100)}, nil
}

func (s *analyticsService) OverallAttendanceRate(ctx context.Context) (dto.AverageAttendance, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.overall_attendance")
	defer span.End()

	avg, err := s.repo.AverageAttendanceRate(ctx, nil)
	if err != nil {
		return dto.AverageAttendance{}, failSpan(span, err, "overall_attendance_failed")
	}

	return dto.AverageAttendance{AverageAttendance: roundTo2(valueOrZero(avg) * 100)}, nil
}

func (s *analyticsService) GradeDistribution(ctx context.Context) (dto.Distribution, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.grade_distribution")
	defer span.End()

	rows, err := s.repo.StudentGradeAverages(ctx)
	if err != nil {
		return dto.Distribution{}, failSpan(span, err, "grade_averages_failed")
	}

	counts := make([]int64, len(gradeBands))
	for _, row := range rows {
		counts[gradeBandIndex(row.Average)]++
	}

	return dto.Distribution{Labels: append([]string(nil), gradeBands...), Data: counts}, nil
}

func (s *analyticsService) StressGradeCorrelation(ctx context.Context) (dto.Correlation, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.stress_grade_correlation")
	defer span.End()

	rows, err := s.repo.StudentStressGradeAverages(ctx)
	if err != nil {
		return dto.Correlation{}, failSpan(span, err, "stress_grade_failed")
	}

	result := dto.Correlation{
		Labels: make([]string, 0, len(rows)),
		Data:   make([]dto.CorrelationPoint, 0, len(rows)),
	}
	for _, row := range rows {
		result.Labels = append(result.Labels, row.FullName)
		result.Data = append(result.Data, dto.CorrelationPoint{X: row.AverageStress, Y: row.AverageGrade, Name: row.FullName})
	}
	span.SetAttributes(attribute.Int("analytics.points", len(rows)))
	return result, nil
}

func (s *analyticsService) DashboardSummary(ctx context.Context) (dto.DashboardSummary, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.dashboard_summary")
	defer span.End()

	var (
		summary dto.DashboardSummary
		err     error
	)
	if summary.TotalStudents, err = s.repo.CountActiveStudents(ctx); err != nil {
		return dto.DashboardSummary{}, failSpan(span, err, "count_students_failed")
	}
	if summary.TotalModules, err = s.repo.CountActiveModules(ctx); err != nil {
		return dto.DashboardSummary{}, failSpan(span, err, "count_modules_failed")
	}
	if summary.PendingAlerts, err = s.repo.CountPendingAlerts(ctx); err != nil {
		return dto.DashboardSummary{}, failSpan(span, err, "count_alerts_failed")
	}
	if summary.TotalUsers, err = s.repo.CountActiveUsers(ctx); err != nil {
		return dto.DashboardSummary{}, failSpan(span, err, "count_users_failed")
	}

	span.SetAttributes(attribute.Int64("analytics.pending_alerts", summary.PendingAlerts))
	return summary, nil
}

func (s *analyticsService) SubmissionStatusDistribution(ctx context.Context) (dto.Distribution, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.submission_status")
	defer span.End()

	result := dto.Distribution{
		Labels: append([]string(nil), submissionStatuses...),
		Data:   make([]int64, len(submissionStatuses)),
	}

	total, err := s.repo.CountSubmissions(ctx, repository.SubmissionCountFilter{})
	if err != nil {
		return dto.Distribution{}, failSpan(span, err, "count_submissions_failed")
	}
	if total == 0 {
		return result, nil
	}

	yes, no := true, false
	filters := []repository.SubmissionCountFilter{
		{IsSubmitted: &yes, IsLate: &no},
		{IsSubmitted: &yes, IsLate: &yes},
		{IsSubmitted: &no},
	}
	for i, filter := range filters {
		count, err := s.repo.CountSubmissions(ctx, filter)
		if err != nil {
			return dto.Distribution{}, failSpan(span, err, "count_submissions_failed")
		}
		result.Data[i] = count
	}
	return result, nil
}

// HighRiskStudents runs the attendance, grade and stress checks in that order and
// folds the matches per student.
func (s *analyticsService) HighRiskStudents(ctx context.Context, thresholds RiskThresholds) ([]dto.HighRiskStudent, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.high_risk_students", trace.WithAttributes(
		attribute.Float64("risk.attendance_threshold", thresholds.AttendancePercent),
		attribute.Float64("risk.grade_threshold", thresholds.Grade),
		attribute.Float64("risk.stress_threshold", thresholds.Stress),
	))
	defer span.End()

	checks := []struct {
		criterion RiskCriterion
		query     func(context.Context) ([]repository.StudentAverage, error)
	}{
		{RiskLowAttendance, func(ctx context.Context) ([]repository.StudentAverage, error) {
			return s.repo.StudentsBelowAttendance(ctx, thresholds.AttendancePercent)
		}},
		{RiskLowGrade, func(ctx context.Context) ([]repository.StudentAverage, error) {
			return s.repo.StudentsBelowGrade(ctx, thresholds.Grade)
		}},
		{RiskHighStress, func(ctx context.Context) ([]repository.StudentAverage, error) {
			return s.repo.StudentsAtOrAboveStress(ctx, thresholds.Stress)
		}},
	}

	reducer := newRiskReducer()
	for _, check := range checks {
		rows, err := check.query(ctx)
		if err != nil {
			return nil, failSpan(span, fmt.Errorf("%s: %w", check.criterion.Code(), err), "risk_query_failed")
		}
		for _, row := range rows {
			reducer.add(riskFinding{studentID: row.StudentID, name: row.FullName, criterion: check.criterion})
		}
	}

	students := reducer.students(thresholds)
	span.SetAttributes(attribute.Int("risk.students", len(students)))
	s.logger.Debug().Int("students", len(students)).Float64("grade_threshold", thresholds.Grade).Msg("high risk students evaluated")
	return students, nil
}

func (s *analyticsService) StressByModule(ctx context.Context) (dto.TrendSeries, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.stress_by_module")
	defer span.End()

	rows, err := s.repo.ModuleStressAverages(ctx)
	if err != nil {
		return dto.TrendSeries{}, failSpan(span, err, "module_stress_failed")
	}

	series := newTrendSeries(len(rows))
	for _, row := range rows {
		series.Labels = append(series.Labels, row.ModuleTitle)
		series.Data = append(series.Data, roundTo2(row.Average))
	}
	return series, nil
}

func failSpan(span trace.Span, err error, status string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return err
}

func newTrendSeries(capacity int) dto.TrendSeries {
	return dto.TrendSeries{
		Labels: make([]string, 0, capacity),
		Data:   make([]float64, 0, capacity),
	}
}

func weekLabel(week int) string {
	return fmt.Sprintf("Week %d", week)
}

func gradeBandIndex(average float64) int {
	switch {
	case average < 40:
		return 0
	case average < 50:
		return 1
	case average < 60:
		return 2
	case average < 70:
		return 3
	default:
		return 4
	}
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
