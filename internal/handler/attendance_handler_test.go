package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/handler"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
)

type mockAttendanceService struct {
	validate  *validator.Validate
	studentID *uint
	moduleID  *uint
	err       error
}

func (m *mockAttendanceService) Create(_ context.Context, payload dto.AttendanceRequest) (dto.AttendanceResponse, error) {
	if err := m.validate.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}
	rate := float64(payload.AttendedSessions) / float64(payload.TotalSessions)
	return dto.AttendanceResponse{ID: 1, StudentID: payload.StudentID, AttendanceRate: rate}, nil
}

func (m *mockAttendanceService) Update(_ context.Context, _ uint, _ dto.AttendanceRequest) (dto.AttendanceResponse, error) {
	return dto.AttendanceResponse{}, m.err
}

func (m *mockAttendanceService) List(_ context.Context, studentID, moduleID *uint) ([]dto.AttendanceResponse, error) {
	m.studentID = studentID
	m.moduleID = moduleID
	return []dto.AttendanceResponse{}, m.err
}

func newAttendanceApp(svc *mockAttendanceService) *fiber.App {
	app := fiber.New()
	handler.NewAttendanceHandler(svc, discardLogger()).Register(app.Group("/api/v1/attendance"))
	return app
}

func TestAttendanceHandler_Create(t *testing.T) {
	svc := &mockAttendanceService{validate: validator.New()}
	app := newAttendanceApp(svc)

	payload := dto.AttendanceRequest{StudentID: 3, ModuleID: 2, WeekNumber: 1, AttendedSessions: 3, TotalSessions: 4}
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/attendance", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Data dto.AttendanceResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.InDelta(t, 0.75, body.Data.AttendanceRate, 0.0001)
}

func TestAttendanceHandler_AttendedAboveTotalRejected(t *testing.T) {
	svc := &mockAttendanceService{validate: validator.New()}
	app := newAttendanceApp(svc)

	payload := dto.AttendanceRequest{StudentID: 3, ModuleID: 2, WeekNumber: 1, AttendedSessions: 5, TotalSessions: 4}
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/attendance", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Details map[string]string `json:"details"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "ltefield", body.Details["attended_sessions"])
}

func TestAttendanceHandler_UpdateNotFound(t *testing.T) {
	svc := &mockAttendanceService{validate: validator.New(), err: service.ErrAttendanceNotFound}
	app := newAttendanceApp(svc)

	payload := dto.AttendanceRequest{StudentID: 3, ModuleID: 2, WeekNumber: 1, AttendedSessions: 1, TotalSessions: 4}
	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/attendance/9", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAttendanceHandler_ListFilters(t *testing.T) {
	svc := &mockAttendanceService{validate: validator.New()}
	app := newAttendanceApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/attendance?module_id=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.studentID)
	require.NotNil(t, svc.moduleID)
	require.Equal(t, uint(2), *svc.moduleID)
}
