package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/database"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, name string) models.Student {
	t.Helper()
	student := models.Student{
		StudentNumber: uuid.NewString()[:8],
		FullName:      name,
		Email:         uuid.NewString() + "@example.ac.uk",
		IsActive:      true,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedModule(t *testing.T, db *gorm.DB, title string) models.Module {
	t.Helper()
	module := models.Module{
		ModuleCode:  uuid.NewString()[:8],
		ModuleTitle: title,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&module).Error)
	return module
}

func seedSurvey(t *testing.T, db *gorm.DB, studentID uint, moduleID *uint, week, stress int) models.SurveyResponse {
	t.Helper()
	survey := models.SurveyResponse{
		StudentID:   studentID,
		ModuleID:    moduleID,
		WeekNumber:  week,
		StressLevel: stress,
		HoursSlept:  7,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&survey).Error)
	return survey
}
