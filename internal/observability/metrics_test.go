package observability_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/Zayne-Feng/group-assessment-v3/internal/observability"
)

func TestMetricsHandlerExposesDetectionCollectors(t *testing.T) {
	app := fiber.New()
	app.Get("/metrics", observability.MetricsHandler())

	observability.StressEventsCreated().Inc()
	observability.DetectionDuplicates().WithLabelValues("alert").Inc()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "wellbeing_stress_events_total")
	require.Contains(t, string(body), "wellbeing_alerts_total")
	require.Contains(t, string(body), `wellbeing_detection_duplicates_total{kind="alert"}`)
}
