package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	ok := HealthCheckFunc(func(context.Context) error { return nil })
	down := HealthCheckFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     map[string]HealthChecker
		wantStatus int
		wantState  string
	}{
		{name: "no backends", wantStatus: fiber.StatusOK, wantState: "ok"},
		{name: "all healthy", checks: map[string]HealthChecker{"redis": ok}, wantStatus: fiber.StatusOK, wantState: "ok"},
		{name: "one down", checks: map[string]HealthChecker{"redis": ok, "database": down}, wantStatus: fiber.StatusServiceUnavailable, wantState: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(tt.checks).HealthCheck)

			resp, body := doJSON(t, app, "GET", "/health", nil, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), `"status":"`+tt.wantState+`"`)
		})
	}
}
