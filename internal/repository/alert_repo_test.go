package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

func TestAlertRepositoryEnforcesOneActiveAlertPerWeek(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada Lovelace")
	module := seedModule(t, db, "Analytical Engines")

	newAlert := func(week int) *models.Alert {
		return &models.Alert{
			StudentID:  student.ID,
			ModuleID:   &module.ID,
			WeekNumber: week,
			Reason:     "consecutive high stress",
			Details:    datatypes.JSONMap{"threshold": 4},
			IsActive:   true,
		}
	}

	require.NoError(t, repo.Create(ctx, newAlert(3)))
	require.ErrorIs(t, repo.Create(ctx, newAlert(3)), ErrDuplicate)
	require.NoError(t, repo.Create(ctx, newAlert(4)))

	exists, err := repo.ExistsForStudentWeek(ctx, student.ID, 3)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsForStudentWeek(ctx, student.ID, 5)
	require.NoError(t, err)
	require.False(t, exists)

	alerts, err := repo.List(ctx, AlertFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.Equal(t, "Ada Lovelace", alerts[0].StudentName)
	require.NotNil(t, alerts[0].ModuleTitle)
	require.Equal(t, "Analytical Engines", *alerts[0].ModuleTitle)
	require.EqualValues(t, 4, alerts[0].Details["threshold"])
}

func TestAlertRepositoryResolveAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Grace")
	alert := &models.Alert{StudentID: student.ID, WeekNumber: 2, Reason: "r", IsActive: true}
	require.NoError(t, repo.Create(ctx, alert))

	require.NoError(t, repo.MarkResolved(ctx, alert.ID))
	stored, err := repo.GetByID(ctx, alert.ID)
	require.NoError(t, err)
	require.True(t, stored.Resolved)

	pending, err := repo.List(ctx, AlertFilter{UnresolvedOnly: true})
	require.NoError(t, err)
	require.Empty(t, pending)

	require.NoError(t, repo.SoftDelete(ctx, alert.ID))
	require.ErrorIs(t, repo.MarkResolved(ctx, alert.ID), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.SoftDelete(ctx, alert.ID), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &models.Alert{StudentID: student.ID, WeekNumber: 2, Reason: "r", IsActive: true}))
}
