package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

func TestAttendanceRecordRepositoryRecomputesRateOnWrite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRecordRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada")
	module := seedModule(t, db, "Logic")

	record := &models.AttendanceRecord{StudentID: student.ID, ModuleID: module.ID, WeekNumber: 1, AttendedSessions: 1, TotalSessions: 2, IsActive: true}
	require.NoError(t, repo.Create(ctx, record))

	stored, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.InDelta(t, 0.5, stored.AttendanceRate, 1e-9)

	stored.AttendedSessions = 2
	require.NoError(t, repo.Save(ctx, &stored))

	records, err := repo.List(ctx, AttendanceFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.InDelta(t, 1.0, records[0].AttendanceRate, 1e-9)
}
