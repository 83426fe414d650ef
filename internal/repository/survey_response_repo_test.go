package repository

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSurveyResponseRepositoryFindByWeekMatchesModule(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSurveyResponseRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada Lovelace")
	maths := seedModule(t, db, "Mathematics")
	physics := seedModule(t, db, "Physics")

	seedSurvey(t, db, student.ID, &maths.ID, 3, 4)
	seedSurvey(t, db, student.ID, nil, 3, 2)

	found, err := repo.FindByWeek(ctx, student.ID, &maths.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 4, found.StressLevel)

	found, err = repo.FindByWeek(ctx, student.ID, nil, 3)
	require.NoError(t, err)
	require.Equal(t, 2, found.StressLevel)

	_, err = repo.FindByWeek(ctx, student.ID, &physics.ID, 3)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSurveyResponseRepositorySoftDeleteHidesRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSurveyResponseRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Grace Hopper")
	survey := seedSurvey(t, db, student.ID, nil, 1, 3)

	require.NoError(t, repo.SoftDelete(ctx, survey.ID))
	require.ErrorIs(t, repo.SoftDelete(ctx, survey.ID), gorm.ErrRecordNotFound)

	_, err := repo.GetByID(ctx, survey.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByWeek(ctx, student.ID, nil, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSurveyResponseRepositoryListAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSurveyResponseRepository(db)
	ctx := context.Background()

	alice := seedStudent(t, db, "Alice")
	bob := seedStudent(t, db, "Bob")
	first := seedSurvey(t, db, alice.ID, nil, 2, 1)
	seedSurvey(t, db, alice.ID, nil, 1, 2)
	seedSurvey(t, db, bob.ID, nil, 1, 5)

	surveys, total, err := repo.List(ctx, SurveyResponseFilter{StudentID: &alice.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, surveys, 2)
	require.Equal(t, 1, surveys[0].WeekNumber)

	surveys, total, err = repo.List(ctx, SurveyResponseFilter{PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, surveys, 1)

	first.StressLevel = 5
	require.NoError(t, repo.Update(ctx, &first))
	updated, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, 5, updated.StressLevel)

	missing := first
	missing.ID = 9999
	require.ErrorIs(t, repo.Update(ctx, &missing), gorm.ErrRecordNotFound)
}

func TestSurveyResponseRepositoryFindByWeekMissingIsNotLogged(t *testing.T) {
	db := setupTestDB(t)
	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: logger.New(log.New(&buf, "", 0), logger.Config{LogLevel: logger.Error})})
	repo := NewSurveyResponseRepository(quiet)

	student := seedStudent(t, db, "Katherine Johnson")

	_, err := repo.FindByWeek(context.Background(), student.ID, nil, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Empty(t, buf.String())
}
