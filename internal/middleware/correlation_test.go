package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func correlationApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen = CorrelationIDFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestCorrelationIDReusesIncomingHeader(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "survey-batch-42")
	resp, err := app.Test(req)
	require.NoError(t, err)

	require.Equal(t, "survey-batch-42", resp.Header.Get(CorrelationHeader))
	require.Equal(t, "survey-batch-42", seen)
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-7")
	resp, err := app.Test(req)
	require.NoError(t, err)

	require.Equal(t, "req-7", resp.Header.Get(CorrelationHeader))
}

func TestCorrelationIDReplacesMalformedHeader(t *testing.T) {
	var seen string
	app := correlationApp(&seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, strings.Repeat("x", maxCorrelationLen+1))
	resp, err := app.Test(req)
	require.NoError(t, err)

	generated := resp.Header.Get(CorrelationHeader)
	_, parseErr := uuid.Parse(generated)
	require.NoError(t, parseErr)
	require.Equal(t, generated, seen)
}
