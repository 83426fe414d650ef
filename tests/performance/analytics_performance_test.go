package performance_test

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/database"
	"github.com/Zayne-Feng/group-assessment-v3/internal/handler"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/repository"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
)

func setupAnalyticsPerformanceApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	modules := []models.Module{
		{ModuleCode: "MOD1", ModuleTitle: "Statistics", IsActive: true},
		{ModuleCode: "MOD2", ModuleTitle: "Databases", IsActive: true},
	}
	for i := range modules {
		require.NoError(t, db.Create(&modules[i]).Error)
	}

	// Seed dataset
	for i := 0; i < 30; i++ {
		student := models.Student{StudentNumber: fmt.Sprintf("P%03d", i), FullName: fmt.Sprintf("Student %d", i), Email: fmt.Sprintf("p%d@example.ac.uk", i), IsActive: true}
		require.NoError(t, db.Create(&student).Error)

		for _, module := range modules {
			moduleID := module.ID
			for week := 1; week <= 6; week++ {
				survey := models.SurveyResponse{StudentID: student.ID, ModuleID: &moduleID, WeekNumber: week, StressLevel: 1 + (i+week)%5, HoursSlept: 7, IsActive: true}
				require.NoError(t, db.Create(&survey).Error)

				record := models.AttendanceRecord{StudentID: student.ID, ModuleID: moduleID, WeekNumber: week, AttendedSessions: (i + week) % 5, TotalSessions: 4, IsActive: true}
				if record.AttendedSessions > record.TotalSessions {
					record.AttendedSessions = record.TotalSessions
				}
				require.NoError(t, db.Create(&record).Error)
			}
			require.NoError(t, db.Create(&models.Grade{StudentID: student.ID, ModuleID: moduleID, AssessmentName: "Exam", Grade: float64(20 + (i*7)%80), IsActive: true}).Error)
		}
	}

	analyticsService := service.NewAnalyticsService(repository.NewAnalyticsRepository(db), zerolog.Nop())
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, service.DefaultRiskThresholds(), nil, zerolog.Nop())

	app := fiber.New()
	analyticsHandler.Register(app.Group("/api/v1/analysis"))

	return app
}

func p95(durations []time.Duration) time.Duration {
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	index := int(math.Ceil(0.95*float64(len(durations)))) - 1
	if index < 0 {
		index = 0
	}
	return durations[index]
}

func TestAnalyticsP95LatencyBelow500ms(t *testing.T) {
	app := setupAnalyticsPerformanceApp(t)

	targets := []string{
		"/api/v1/analysis/high-risk-students",
		"/api/v1/analysis/stress-grade-correlation",
		"/api/v1/analysis/stress-by-module",
	}

	for _, target := range targets {
		runs := 40
		durations := make([]time.Duration, 0, runs)

		for i := 0; i < runs; i++ {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			start := time.Now()
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			durations = append(durations, time.Since(start))
		}

		require.LessOrEqual(t, p95(durations), 500*time.Millisecond, target)
	}
}
