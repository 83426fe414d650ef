package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

func TestUnitOfWorkRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()
	student := seedStudent(t, db, "Ada")

	boom := errors.New("boom")
	err := uow.WithinTransaction(ctx, func(store Store) error {
		survey := &models.SurveyResponse{StudentID: student.ID, WeekNumber: 1, StressLevel: 5, HoursSlept: 4, IsActive: true}
		require.NoError(t, store.Surveys.Create(ctx, survey))
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.SurveyResponse{}).Count(&count).Error)
	require.Zero(t, count)

	err = uow.WithinTransaction(ctx, func(store Store) error {
		survey := &models.SurveyResponse{StudentID: student.ID, WeekNumber: 1, StressLevel: 5, HoursSlept: 4, IsActive: true}
		return store.Surveys.Create(ctx, survey)
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.SurveyResponse{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
