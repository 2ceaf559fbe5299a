package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/employees/", 200, 15*time.Millisecond)
	c.Record(http.MethodGet, "/api/employees/", 200, 5*time.Millisecond)
	c.Record(http.MethodPost, "", 429, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/employees/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "unmatched", "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited))
}

func TestDomainCounters(t *testing.T) {
	c := New()
	c.SectionDegraded("vacations")
	c.EventPublished("employee.created", nil)
	c.EventPublished("employee.created", errors.New("broker down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.degradedSection.WithLabelValues("vacations")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.eventsPublished.WithLabelValues("employee.created", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.eventsPublished.WithLabelValues("employee.created", "error")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Record("GET", "/", 200, time.Millisecond)
		c.SectionDegraded("financials")
		c.EventPublished("x", nil)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/health", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "hrpro_http_requests_total"))
}
