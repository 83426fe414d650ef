package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttendanceRecordRecomputeRate(t *testing.T) {
	record := AttendanceRecord{AttendedSessions: 1, TotalSessions: 2}
	require.NoError(t, record.BeforeSave(nil))
	require.Equal(t, 0.5, record.AttendanceRate)

	record.AttendedSessions = 3
	record.TotalSessions = 0
	record.RecomputeRate()
	require.Equal(t, 0.0, record.AttendanceRate)
}

func TestSurveyResponseReachesStressIsInclusive(t *testing.T) {
	survey := SurveyResponse{StressLevel: 4}
	require.True(t, survey.ReachesStress(4))
	require.False(t, survey.ReachesStress(5))
}
