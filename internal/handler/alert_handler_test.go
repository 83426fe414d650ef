package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/handler"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
)

type mockAlertService struct {
	listRequest   dto.AlertListRequest
	eventsStudent *uint
	resolved      []uint
	err           error
}

func (m *mockAlertService) List(_ context.Context, req dto.AlertListRequest) ([]dto.AlertResponse, error) {
	m.listRequest = req
	return []dto.AlertResponse{{ID: 1, StudentID: 2, Reason: "stress"}}, m.err
}

func (m *mockAlertService) Resolve(_ context.Context, id uint) (dto.AlertResponse, error) {
	if m.err != nil {
		return dto.AlertResponse{}, m.err
	}
	m.resolved = append(m.resolved, id)
	return dto.AlertResponse{ID: id, Resolved: true}, nil
}

func (m *mockAlertService) Delete(_ context.Context, _ uint) error {
	return m.err
}

func (m *mockAlertService) ListStressEvents(_ context.Context, studentID *uint) ([]dto.StressEventResponse, error) {
	m.eventsStudent = studentID
	return []dto.StressEventResponse{}, m.err
}

func newAlertApp(svc service.AlertService) *fiber.App {
	app := fiber.New()
	h := handler.NewAlertHandler(svc, discardLogger())
	h.Register(app.Group("/api/v1/alerts"))
	h.RegisterStressEvents(app.Group("/api/v1/stress-events"))
	return app
}

func TestAlertHandler_ListParsesFilters(t *testing.T) {
	svc := &mockAlertService{}
	app := newAlertApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/alerts?student_id=2&unresolved=true", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.listRequest.UnresolvedOnly)
	require.NotNil(t, svc.listRequest.StudentID)
	require.Equal(t, uint(2), *svc.listRequest.StudentID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/alerts?unresolved=maybe", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAlertHandler_Resolve(t *testing.T) {
	svc := &mockAlertService{}
	app := newAlertApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/alerts/8/resolve", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.AlertResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Data.Resolved)
	require.Equal(t, []uint{8}, svc.resolved)
}

func TestAlertHandler_NotFound(t *testing.T) {
	svc := &mockAlertService{err: service.ErrAlertNotFound}
	app := newAlertApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/alerts/8/resolve", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/alerts/8", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAlertHandler_StressEventsFilter(t *testing.T) {
	svc := &mockAlertService{}
	app := newAlertApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stress-events?student_id=4", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.eventsStudent)
	require.Equal(t, uint(4), *svc.eventsStudent)
}
