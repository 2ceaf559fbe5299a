package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
)

func summary(id, name string, gross float64) employees.Summary {
	return employees.Summary{
		Employee:        employees.Employee{ID: id, FullName: name},
		BaseSalaryGross: gross,
		NetSalary:       gross * 0.77,
		Deductions:      gross * 0.23,
	}
}

func TestStaleDetailIsIgnored(t *testing.T) {
	s := Initial()
	s = Reduce(s, EmployeeSelected{ID: "1", Seq: 1})
	s = Reduce(s, EmployeeSelected{ID: "2", Seq: 2})

	s = Reduce(s, EmployeeDetailLoaded{Seq: 2, Detail: employees.Detail{Employee: employees.Employee{ID: "2"}}})
	s = Reduce(s, EmployeeDetailLoaded{Seq: 1, Detail: employees.Detail{Employee: employees.Employee{ID: "1"}}})

	require.NotNil(t, s.Employee)
	assert.Equal(t, "2", s.Employee.ID)
	assert.Equal(t, ViewEmployeeDetail, s.View)

	s = Reduce(s, EmployeeDetailFailed{Seq: 1, Err: "late failure"})
	assert.Empty(t, s.Notice)
	assert.False(t, s.EmployeeFallback)
}

func TestDetailFailureFallsBackToListEntry(t *testing.T) {
	s := Reduce(Initial(), EmployeesLoaded{Items: []employees.Summary{summary("4", "Ana Teste", 2000)}})
	s = Reduce(s, EmployeeSelected{ID: "4", Seq: 7})
	s = Reduce(s, EmployeeDetailFailed{Seq: 7, Err: "Erro ao obter colaborador"})

	require.NotNil(t, s.Employee)
	assert.True(t, s.EmployeeFallback)
	assert.Equal(t, "Ana Teste", s.Employee.FullName)
	assert.Equal(t, 2000.0, s.Employee.Financials.BaseSalaryGross)
	assert.Equal(t, ViewEmployeeDetail, s.View)
	assert.Equal(t, "Erro ao obter colaborador", s.Notice)
}

func TestLoadLifecycle(t *testing.T) {
	s := Initial()
	assert.True(t, s.Loading)

	s = Reduce(s, EmployeesFailed{Err: "offline"})
	assert.False(t, s.Loading)
	assert.Equal(t, "offline", s.Error)

	s = Reduce(s, LoadStarted{})
	assert.True(t, s.Loading)
	assert.Empty(t, s.Error)

	s = Reduce(s, EmployeesLoaded{Items: []employees.Summary{summary("1", "Maria", 1000)}})
	assert.False(t, s.Loading)
	assert.Len(t, s.Employees, 1)
}

func TestNavigateBackClearsSelection(t *testing.T) {
	s := Reduce(Initial(), EmployeeSelected{ID: "3", Seq: 1})
	s = Reduce(s, EmployeeDetailLoaded{Seq: 1, Detail: employees.Detail{Employee: employees.Employee{ID: "3"}}})
	s = Reduce(s, Navigate{View: ViewEmployees})

	assert.Empty(t, s.Selected.EmployeeID)
	assert.Nil(t, s.Employee)

	s = Reduce(s, DepartmentSelected{ID: "2"})
	s = Reduce(s, DepartmentMembersLoaded{ID: "2", Members: []departments.Member{{ID: "5"}}})
	s = Reduce(s, DepartmentMembersLoaded{ID: "1", Members: []departments.Member{{ID: "9"}}})
	require.Len(t, s.DepartmentMembers, 1)
	assert.Equal(t, "5", s.DepartmentMembers[0].ID)

	s = Reduce(s, Navigate{View: ViewDepartments})
	assert.Empty(t, s.Selected.DepartmentID)
	assert.Nil(t, s.DepartmentMembers)
}

func TestEmployeeRemovedLeavesDetail(t *testing.T) {
	s := Reduce(Initial(), EmployeeSelected{ID: "3", Seq: 1})
	s = Reduce(s, EmployeeDetailLoaded{Seq: 1, Detail: employees.Detail{Employee: employees.Employee{ID: "3"}}})

	other := Reduce(s, EmployeeRemoved{ID: "8"})
	assert.Equal(t, ViewEmployeeDetail, other.View)

	s = Reduce(s, EmployeeRemoved{ID: "3"})
	assert.Equal(t, ViewEmployees, s.View)
	assert.Nil(t, s.Employee)
}

func TestUpdatesDoNotMutatePreviousState(t *testing.T) {
	before := Reduce(Initial(), TrainingsLoaded{Items: []trainings.Program{
		{ID: "1", Title: "Segurança", EnrolledEmployeeIDs: []string{"1"}},
		{ID: "2", Title: "Excel"},
	}})
	after := Reduce(before, TrainingUpdated{Training: trainings.Program{ID: "1", Title: "Segurança", EnrolledEmployeeIDs: []string{"1", "4"}}})

	assert.Equal(t, []string{"1"}, before.Trainings[0].EnrolledEmployeeIDs)
	assert.Equal(t, []string{"1", "4"}, after.Trainings[0].EnrolledEmployeeIDs)
	assert.Len(t, after.Trainings, 2)
}

func TestCandidateUpdateIsScopedToJob(t *testing.T) {
	s := Reduce(Initial(), CandidatesLoaded{Items: []recruitment.Candidate{
		{ID: "1", JobID: "1", Status: recruitment.CandidateSubmitted},
		{ID: "1", JobID: "2", Status: recruitment.CandidateSubmitted},
	}})
	s = Reduce(s, CandidateUpdated{Candidate: recruitment.Candidate{ID: "1", JobID: "2", Status: recruitment.CandidateInterview}})

	assert.Equal(t, recruitment.CandidateSubmitted, s.Candidates[0].Status)
	assert.Equal(t, recruitment.CandidateInterview, s.Candidates[1].Status)

	s = Reduce(s, JobSelected{ID: "2"})
	require.Len(t, s.JobCandidates(), 1)
	assert.Equal(t, ViewJobDetail, s.View)
}

func TestSelectedLookups(t *testing.T) {
	s := Reduce(Initial(), JobsLoaded{Items: []recruitment.Job{{ID: "3", Title: "Tecnologia"}}})
	s = Reduce(s, JobSelected{ID: "3"})
	job, ok := s.Job()
	require.True(t, ok)
	assert.Equal(t, "Tecnologia", job.Title)

	_, ok = s.Training()
	assert.False(t, ok)
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore(Initial())

	var mu sync.Mutex
	var seen []string
	unsubscribe := store.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s.Search)
	})

	store.Dispatch(SearchChanged{Query: "ana"})
	unsubscribe()
	store.Dispatch(SearchChanged{Query: "rui"})

	assert.Equal(t, []string{"ana"}, seen)
	assert.Equal(t, "rui", store.State().Search)
}
