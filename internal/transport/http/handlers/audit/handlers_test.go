package audithandler

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpro/internal/domain/audit"
)

type listerFunc func(context.Context, audit.Filter, int) ([]audit.Entry, error)

func (f listerFunc) List(ctx context.Context, filter audit.Filter, limit int) ([]audit.Entry, error) {
	return f(ctx, filter, limit)
}

func TestListAndExport(t *testing.T) {
	var gotFilter audit.Filter
	var gotLimit int
	h := NewHandler(listerFunc(func(_ context.Context, f audit.Filter, limit int) ([]audit.Entry, error) {
		gotFilter, gotLimit = f, limit
		return []audit.Entry{{
			ID: "1", Action: "employee.created", EntityType: "employee", EntityID: "4",
			CreatedAt: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
		}}, nil
	}))
	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit/events?entityType=employee&entityId=4&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, audit.Filter{EntityType: "employee", EntityID: "4"}, gotFilter)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit/events/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-10-15T08:00:00Z", records[1][6])
}
