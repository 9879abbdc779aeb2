package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chargecast/aggregator"
	"chargecast/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns canned results or errors
type fakeGenerator struct {
	summaries []models.DailySummary
	window    models.ChargingWindow
	err       error

	gotHours int
}

func (f *fakeGenerator) ThreeDayAverages(ctx context.Context) ([]models.DailySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}

func (f *fakeGenerator) OptimalChargingWindow(ctx context.Context, hours int) (models.ChargingWindow, error) {
	f.gotHours = hours
	if f.err != nil {
		return models.ChargingWindow{}, f.err
	}
	return f.window, nil
}

func newTestServer(generator Generator) *Server {
	return NewServer(generator, nil, ":0", false)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestThreeDaysEndpoint(t *testing.T) {
	generator := &fakeGenerator{summaries: []models.DailySummary{
		{
			Date:                  "2025-01-01",
			AverageMixBySource:    map[string]float64{"wind": 30, "nuclear": 15},
			CleanEnergyPercentage: 45,
		},
		{
			Date:                  "2025-01-02",
			AverageMixBySource:    map[string]float64{"wind": 50},
			CleanEnergyPercentage: 50,
		},
	}}
	server := newTestServer(generator)

	rec := doRequest(t, server, "/api/v1/generation/three-days")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summaries []models.DailySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Equal(t, generator.summaries, summaries)
}

func TestChargeWindowEndpoint(t *testing.T) {
	start := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)
	generator := &fakeGenerator{window: models.ChargingWindow{
		Start:                        start,
		End:                          start.Add(2 * time.Hour),
		AverageCleanEnergyPercentage: 85,
	}}
	server := newTestServer(generator)

	rec := doRequest(t, server, "/api/v1/charge-window?hours=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, generator.gotHours)

	var window models.ChargingWindow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &window))
	assert.True(t, window.Start.Equal(start))
	assert.True(t, window.End.Equal(start.Add(2*time.Hour)))
	assert.Equal(t, 85.0, window.AverageCleanEnergyPercentage)
}

func TestChargeWindowInvalidHours(t *testing.T) {
	generator := &fakeGenerator{err: &aggregator.InvalidWindowError{Hours: 10}}
	server := newTestServer(generator)

	rec := doRequest(t, server, "/api/v1/charge-window?hours=10")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, "BAD_REQUEST", body.ErrorMessage)
	assert.Equal(t, "Charging window length must be between 1 and 6 hours", body.Message)
	assert.Equal(t, "/api/v1/charge-window", body.Path)
	assert.False(t, body.Timestamp.IsZero())
}

func TestChargeWindowNonIntegerHours(t *testing.T) {
	server := newTestServer(&fakeGenerator{})

	for _, path := range []string{
		"/api/v1/charge-window",
		"/api/v1/charge-window?hours=abc",
		"/api/v1/charge-window?hours=1.5",
	} {
		rec := doRequest(t, server, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
		body := decodeErrorBody(t, rec)
		assert.Equal(t, "BAD_REQUEST", body.ErrorMessage)
	}
}

func TestNoDataMapsToServerError(t *testing.T) {
	server := newTestServer(&fakeGenerator{err: aggregator.ErrNoData})

	rec := doRequest(t, server, "/api/v1/generation/three-days")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.ErrorMessage)
	assert.Equal(t, "No generation data found for the requested period.", body.Message)
}

func TestInsufficientDataMapsToServerError(t *testing.T) {
	err := fmt.Errorf("%w: have 2 samples, need 6", aggregator.ErrInsufficientData)
	server := newTestServer(&fakeGenerator{err: err})

	rec := doRequest(t, server, "/api/v1/charge-window?hours=3")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProviderFailureMapsToBadGateway(t *testing.T) {
	err := fmt.Errorf("%w: %w", aggregator.ErrProviderUnavailable, errors.New("connection refused"))
	server := newTestServer(&fakeGenerator{err: err})

	rec := doRequest(t, server, "/api/v1/generation/three-days")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "BAD_GATEWAY", body.ErrorMessage)
	assert.Contains(t, body.Message, "Failed to fetch data from CarbonIntensity API")
}

func TestUnknownErrorMapsToInternal(t *testing.T) {
	server := newTestServer(&fakeGenerator{err: errors.New("boom")})

	rec := doRequest(t, server, "/api/v1/generation/three-days")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.ErrorMessage)
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(&fakeGenerator{})

	rec := doRequest(t, server, "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(&fakeGenerator{})

	rec := doRequest(t, server, "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	// An incoming request ID is echoed back
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "test-id-123")
	echo := httptest.NewRecorder()
	server.Handler().ServeHTTP(echo, req)
	assert.Equal(t, "test-id-123", echo.Header().Get("X-Request-Id"))
}

func TestMetricsRouteGatedByConfig(t *testing.T) {
	enabled := NewServer(&fakeGenerator{}, nil, ":0", true)
	rec := doRequest(t, enabled, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)

	disabled := NewServer(&fakeGenerator{}, nil, ":0", false)
	rec = doRequest(t, disabled, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
