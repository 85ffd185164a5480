package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/hms_backend/config"
)

func TestConfigFromCentral(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Environment = "production"
	cfg.Observability.ServiceName = "hms_backend"
	cfg.Observability.Tracing.Enabled = true
	cfg.Observability.Tracing.SamplingRate = 0.5

	got := ConfigFromCentral(cfg)
	assert.Equal(t, "hms_backend", got.ServiceName)
	assert.Equal(t, "production", got.Environment)
	assert.True(t, got.TracingEnabled)
	assert.False(t, got.MetricsEnabled)
	assert.Equal(t, 0.5, got.SamplingRate)
}

func TestInitTelemetry_TracingOnly(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "test", TracingEnabled: true})
	require.NoError(t, err)
	assert.NotNil(t, p.TracerProvider)
	assert.Nil(t, p.MeterProvider)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestFiberMiddleware_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(FiberMiddleware("/livez"))
	app.Get("/livez", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	resp, err := app.Test(httptest.NewRequest("GET", "/livez", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestDomainMetrics_NilSafe(t *testing.T) {
	var m *DomainMetrics
	m.EventPublished(context.Background(), "appointment.approved", nil)

	NewDomainMetrics().EventPublished(context.Background(), "payment.rejected", errors.New("x"))
}
