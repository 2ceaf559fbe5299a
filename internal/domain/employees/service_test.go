package employees

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/trainings"
)

type fakeStore struct {
	profile  Employee
	gross    float64
	failing  map[string]bool
	created  []NewEmployee
	nets     []float64
	summary  []Summary
	notFound bool
}

func (f *fakeStore) fail(name string) error {
	if f.failing[name] {
		return errors.Errorf("%s unavailable", name)
	}
	return nil
}

func (f *fakeStore) List(context.Context) ([]Summary, error) { return f.summary, nil }

func (f *fakeStore) GetProfile(context.Context, int64) (Employee, error) {
	if f.notFound {
		return Employee{}, ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeStore) CurrentSalary(context.Context, int64) (float64, error) {
	return f.gross, f.fail("salary")
}

func (f *fakeStore) Benefits(context.Context, int64) ([]Benefit, error) {
	if err := f.fail("benefits"); err != nil {
		return nil, err
	}
	return []Benefit{{ID: "1-Seguro-2024-01-01", Type: "Seguro", Value: 50, StartDate: "2024-01-01"}}, nil
}

func (f *fakeStore) SalaryHistory(context.Context, int64) ([]SalaryEntry, error) {
	return []SalaryEntry{{Date: "2024-01-01", Amount: f.gross, Reason: SalaryUpdateReason}}, f.fail("salaryHistory")
}

func (f *fakeStore) VacationHistory(context.Context, int64) ([]VacationRecord, error) {
	if err := f.fail("vacations"); err != nil {
		return nil, err
	}
	return []VacationRecord{
		{ID: "1-2026-07-01", StartDate: "2026-07-01", EndDate: "2026-07-10", DaysUsed: 8, Status: VacationApproved},
		{ID: "1-2026-12-01", StartDate: "2026-12-01", EndDate: "2026-12-03", DaysUsed: 3, Status: VacationPending},
	}, nil
}

func (f *fakeStore) JobHistory(context.Context, int64) ([]JobHistory, error) {
	return []JobHistory{{Company: "bd054", Role: "Analista", StartDate: "2020-01-01", IsInternal: true}}, f.fail("jobHistory")
}

func (f *fakeStore) Dependents(context.Context, int64) ([]Dependent, error) {
	return nil, f.fail("dependents")
}

func (f *fakeStore) Absences(context.Context, int64) ([]Absence, error) {
	return []Absence{{ID: "1-2026-03-02", Date: "2026-03-02", Reason: "Consulta", Justified: true}}, f.fail("absences")
}

func (f *fakeStore) Create(_ context.Context, in NewEmployee, net float64) (int64, error) {
	f.created = append(f.created, in)
	f.nets = append(f.nets, net)
	return int64(len(f.created)), nil
}

func (f *fakeStore) Update(context.Context, int64, Changes) error { return nil }

func (f *fakeStore) Delete(context.Context, int64) error { return nil }

type fakeTrainings struct{ err error }

func (f fakeTrainings) ListByEmployee(context.Context, int64) ([]trainings.Attendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []trainings.Attendance{{ID: "1", Title: "Excel", Status: trainings.StatusCompleted, Provider: trainings.DefaultProvider}}, nil
}

type fakeEvaluations struct{}

func (fakeEvaluations) ListByEmployee(context.Context, int64) ([]evaluations.Evaluation, error) {
	return []evaluations.Evaluation{{ID: "1", EmployeeID: "1", ReviewerID: "1", Score: 4, Type: evaluations.TypeSelf}}, nil
}

type countingObserver struct {
	mu       sync.Mutex
	sections []string
}

func (o *countingObserver) SectionDegraded(section string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sections = append(o.sections, section)
}

func newTestService(store *fakeStore, tr TrainingReader) (*Service, *countingObserver, *bytes.Buffer) {
	var buf bytes.Buffer
	svc := NewService(store, tr, fakeEvaluations{}, nil, 0, zerolog.New(&buf))
	svc.Now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	obs := &countingObserver{}
	svc.Observer = obs
	return svc, obs, &buf
}

func testProfile() Employee {
	return Employee{ID: "1", FirstName: "Maria", LastName: "Silva", FullName: "Maria Silva", BirthDate: "1985-03-15"}
}

func TestGetAssemblesAllSections(t *testing.T) {
	store := &fakeStore{profile: testProfile(), gross: 2000}
	svc, obs, _ := newTestService(store, fakeTrainings{})

	d, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 41, d.Age)
	assert.Equal(t, 2000.0, d.Financials.BaseSalaryGross)
	assert.Equal(t, 1540.0, d.Financials.NetSalary)
	assert.Equal(t, 460.0, d.Financials.Deductions)
	assert.Len(t, d.Financials.Benefits, 1)
	assert.Len(t, d.Financials.History, 1)
	assert.Equal(t, 22, d.Vacations.TotalDays)
	assert.Equal(t, 8, d.Vacations.UsedDays)
	assert.Equal(t, 14, d.Vacations.RemainingDays)
	assert.Len(t, d.Trainings, 1)
	assert.Len(t, d.Evaluations, 1)
	assert.True(t, d.JobHistory[0].IsInternal)
	assert.NotNil(t, d.Dependents)
	assert.Empty(t, d.Dependents)
	assert.Len(t, d.Absences, 1)
	assert.Empty(t, obs.sections)
}

func TestGetDegradesFailingSections(t *testing.T) {
	store := &fakeStore{
		profile: testProfile(),
		gross:   2000,
		failing: map[string]bool{"benefits": true, "vacations": true},
	}
	svc, obs, logs := newTestService(store, fakeTrainings{err: errors.New("timeout")})

	d, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, d.Financials.Benefits)
	assert.NotNil(t, d.Financials.Benefits)
	assert.Equal(t, 1540.0, d.Financials.NetSalary)
	assert.Equal(t, 0, d.Vacations.UsedDays)
	assert.Equal(t, 22, d.Vacations.RemainingDays)
	assert.Empty(t, d.Trainings)
	assert.Len(t, d.Absences, 1)
	assert.ElementsMatch(t, []string{"benefits", "vacations", "trainings"}, obs.sections)
	assert.Contains(t, logs.String(), "employee section degraded")
}

func TestGetOnlyRequestedSections(t *testing.T) {
	store := &fakeStore{profile: testProfile(), gross: 1000}
	svc, _, _ := newTestService(store, fakeTrainings{})

	d, err := svc.Get(context.Background(), 1, SectionVacations)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Financials.BaseSalaryGross)
	assert.Equal(t, 8, d.Vacations.UsedDays)
	assert.Empty(t, d.Trainings)
	assert.Empty(t, d.JobHistory)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeStore{notFound: true}, fakeTrainings{})
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListComputesSalaryFields(t *testing.T) {
	store := &fakeStore{summary: []Summary{
		{Employee: Employee{ID: "1", BirthDate: "1990-01-01"}, BaseSalaryGross: 2000},
		{Employee: Employee{ID: "2", BirthDate: "1990-01-01"}},
	}}
	svc, _, _ := newTestService(store, fakeTrainings{})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1540.0, list[0].NetSalary)
	assert.Equal(t, 460.0, list[0].Deductions)
	assert.Equal(t, 36, list[0].Age)
	assert.Equal(t, 0.0, list[1].NetSalary)
}

func TestCreateComputesNetAndAdmission(t *testing.T) {
	store := &fakeStore{}
	svc, _, _ := newTestService(store, fakeTrainings{})
	gross := 2000.0

	id, err := svc.Create(context.Background(), NewEmployee{NIF: "123456789", BaseSalaryGross: &gross})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []float64{1540}, store.nets)
	assert.Equal(t, 2026, store.created[0].AdmissionDate.Year())

	negative := -1.0
	_, err = svc.Create(context.Background(), NewEmployee{BaseSalaryGross: &negative})
	assert.ErrorIs(t, err, ErrInvalidSalary)
	assert.Len(t, store.created, 1)
}
