package trainingshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpro/internal/domain/trainings"
)

type memStore struct {
	programs  map[int64]trainings.Program
	employees map[int64]bool
}

func newMemStore() *memStore {
	return &memStore{
		programs: map[int64]trainings.Program{
			1: {ID: "1", Title: "Liderança", Status: trainings.StatusPlanned, EnrolledEmployeeIDs: []string{"1"}},
		},
		employees: map[int64]bool{1: true, 2: true, 3: true},
	}
}

func (m *memStore) List(context.Context) ([]trainings.Program, error) {
	return []trainings.Program{m.programs[1]}, nil
}

func (m *memStore) Get(_ context.Context, id int64) (trainings.Program, error) {
	p, ok := m.programs[id]
	if !ok {
		return trainings.Program{}, trainings.ErrNotFound
	}
	p.EnrolledEmployeeIDs = slices.Clone(p.EnrolledEmployeeIDs)
	return p, nil
}

func (m *memStore) ListByEmployee(context.Context, int64) ([]trainings.Attendance, error) {
	return nil, nil
}

func (m *memStore) Enroll(_ context.Context, trainingID, employeeID int64) (bool, error) {
	p, ok := m.programs[trainingID]
	if !ok {
		return false, trainings.ErrNotFound
	}
	if !m.employees[employeeID] {
		return false, trainings.ErrEmployeeNotFound
	}
	id := strconv.FormatInt(employeeID, 10)
	if slices.Contains(p.EnrolledEmployeeIDs, id) {
		return false, nil
	}
	p.EnrolledEmployeeIDs = append(p.EnrolledEmployeeIDs, id)
	m.programs[trainingID] = p
	return true, nil
}

func (m *memStore) RemoveParticipant(_ context.Context, trainingID, employeeID int64) error {
	p, ok := m.programs[trainingID]
	if !ok {
		return trainings.ErrNotFound
	}
	i := slices.Index(p.EnrolledEmployeeIDs, strconv.FormatInt(employeeID, 10))
	if i < 0 {
		return trainings.ErrNotEnrolled
	}
	p.EnrolledEmployeeIDs = slices.Delete(p.EnrolledEmployeeIDs, i, i+1)
	m.programs[trainingID] = p
	return nil
}

func setup() http.Handler {
	h := NewHandler(trainings.NewService(newMemStore()), nil)
	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)
	return r
}

func request(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func enrolled(t *testing.T, h http.Handler) []string {
	t.Helper()
	rec := request(h, http.MethodGet, "/api/trainings/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p trainings.Program
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p.EnrolledEmployeeIDs
}

func TestEnrollGrowsListOnce(t *testing.T) {
	h := setup()
	before := enrolled(t, h)

	rec := request(h, http.MethodPost, "/api/trainings/1/enroll", `{"employeeId": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp participationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, MsgEnrolled, resp.Message)
	assert.Len(t, resp.Training.EnrolledEmployeeIDs, len(before)+1)

	rec = request(h, http.MethodPost, "/api/trainings/1/enroll", `{"employeeId": "3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	after := enrolled(t, h)
	assert.Len(t, after, len(before)+1)
	count := 0
	for _, id := range after {
		if id == "3" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEnrollUnknown(t *testing.T) {
	h := setup()

	rec := request(h, http.MethodPost, "/api/trainings/999/enroll", `{"employeeId": 3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgNotFound)

	rec = request(h, http.MethodPost, "/api/trainings/1/enroll", `{"employeeId": 404}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgEmployeeNotFound)

	rec = request(h, http.MethodPost, "/api/trainings/1/enroll", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveParticipant(t *testing.T) {
	h := setup()

	rec := request(h, http.MethodDelete, "/api/trainings/1/participants/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, enrolled(t, h))

	rec = request(h, http.MethodDelete, "/api/trainings/1/participants/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
