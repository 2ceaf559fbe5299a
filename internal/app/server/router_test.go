package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpro/internal/domain/departments"
	"hrpro/internal/platform/config"
	"hrpro/internal/platform/metrics"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/middleware"
)

type departmentStore struct{}

func (departmentStore) List(context.Context) ([]departments.Department, error) {
	return []departments.Department{{ID: "1", Name: "Recursos Humanos"}}, nil
}

func (departmentStore) Get(_ context.Context, id int64) (departments.Department, error) {
	if id != 1 {
		return departments.Department{}, departments.ErrNotFound
	}
	return departments.Department{ID: "1", Name: "Recursos Humanos"}, nil
}

func (departmentStore) Members(context.Context, int64) ([]departments.Member, error) {
	return []departments.Member{}, nil
}

func (departmentStore) SetManager(context.Context, int64, *int64) error { return nil }

func testConfig() config.Config {
	return config.Config{
		MaxBodyBytes:      1 << 20,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		MetricsEnabled:    true,
	}
}

func testRouter(t *testing.T, cfg config.Config, ready func(context.Context) error) http.Handler {
	t.Helper()
	return NewRouter(cfg, Deps{
		Departments: departments.NewService(departmentStore{}),
		Metrics:     metrics.New(),
		Log:         zerolog.Nop(),
		Ready:       ready,
		Now:         func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) },
	})
}

func TestHealth(t *testing.T) {
	router := testRouter(t, testConfig(), nil)

	for _, path := range []string{"/health", "/api/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body healthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "OK", body.Status)
		assert.Equal(t, ServiceName, body.Service)
		assert.Equal(t, "2026-10-15T09:30:00Z", body.Timestamp)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestReadyzReportsDatabaseFailure(t *testing.T) {
	router := testRouter(t, testConfig(), func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := testRouter(t, testConfig(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body api.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, api.MsgRouteNotFound, body.Error)
	assert.Equal(t, "/api/nothing-here", body.Path)
}

func TestWiredServiceAndMetrics(t *testing.T) {
	router := testRouter(t, testConfig(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/departments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hrpro_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	router := testRouter(t, cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitOnAPI(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	router := testRouter(t, cfg, nil)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/departments", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/departments", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimitIgnoresForwardedHeaders(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	router := testRouter(t, cfg, nil)

	codes := make([]int, 0, 2)
	for _, fwd := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	cfg.TrustProxy = true
	router := testRouter(t, cfg, nil)

	codes := make([]int, 0, 3)
	for _, fwd := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>hr pro</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	cfg := testConfig()
	cfg.FrontendDir = dir
	router := testRouter(t, cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hr pro")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}
