package service

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/database"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupWellbeingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createStudent(t *testing.T, db *gorm.DB, name string) models.Student {
	t.Helper()
	student := models.Student{StudentNumber: uuid.NewString()[:8], FullName: name, Email: uuid.NewString() + "@example.ac.uk", IsActive: true}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func createModule(t *testing.T, db *gorm.DB, title string) models.Module {
	t.Helper()
	module := models.Module{ModuleCode: uuid.NewString()[:8], ModuleTitle: title, IsActive: true}
	require.NoError(t, db.Create(&module).Error)
	return module
}

func createSurvey(t *testing.T, db *gorm.DB, studentID uint, moduleID *uint, week, stress int) models.SurveyResponse {
	t.Helper()
	survey := models.SurveyResponse{StudentID: studentID, ModuleID: moduleID, WeekNumber: week, StressLevel: stress, HoursSlept: 6, IsActive: true}
	require.NoError(t, db.Create(&survey).Error)
	return survey
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where("is_active = ?", true).Count(&count).Error)
	return count
}
