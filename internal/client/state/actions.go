package state

import (
	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
)

// Action is one state transition. Only the types in this package implement it.
type Action interface {
	action()
}

type (
	Navigate struct{ View View }

	LoadStarted     struct{}
	EmployeesLoaded struct{ Items []employees.Summary }
	EmployeesFailed struct{ Err string }

	DepartmentsLoaded struct{ Items []departments.Department }
	JobsLoaded        struct{ Items []recruitment.Job }
	CandidatesLoaded  struct{ Items []recruitment.Candidate }
	TrainingsLoaded   struct{ Items []trainings.Program }
	EvaluationsLoaded struct{ Items []evaluations.Evaluation }

	// EmployeeSelected starts a detail fetch tagged with Seq.
	EmployeeSelected struct {
		ID  string
		Seq uint64
	}
	EmployeeDetailLoaded struct {
		Seq    uint64
		Detail employees.Detail
	}
	EmployeeDetailFailed struct {
		Seq uint64
		Err string
	}
	EmployeeRemoved struct{ ID string }

	DepartmentSelected      struct{ ID string }
	DepartmentMembersLoaded struct {
		ID      string
		Members []departments.Member
	}
	DepartmentUpdated struct{ Department departments.Department }

	JobSelected      struct{ ID string }
	JobUpdated       struct{ Job recruitment.Job }
	CandidateUpdated struct{ Candidate recruitment.Candidate }

	TrainingSelected struct{ ID string }
	TrainingUpdated  struct{ Training trainings.Program }

	EvaluationSelected struct{ ID string }

	Notify        struct{ Message string }
	SearchChanged struct{ Query string }
)

func (Navigate) action()                {}
func (LoadStarted) action()             {}
func (EmployeesLoaded) action()         {}
func (EmployeesFailed) action()         {}
func (DepartmentsLoaded) action()       {}
func (JobsLoaded) action()              {}
func (CandidatesLoaded) action()        {}
func (TrainingsLoaded) action()         {}
func (EvaluationsLoaded) action()       {}
func (EmployeeSelected) action()        {}
func (EmployeeDetailLoaded) action()    {}
func (EmployeeDetailFailed) action()    {}
func (EmployeeRemoved) action()         {}
func (DepartmentSelected) action()      {}
func (DepartmentMembersLoaded) action() {}
func (DepartmentUpdated) action()       {}
func (JobSelected) action()             {}
func (JobUpdated) action()              {}
func (CandidateUpdated) action()        {}
func (TrainingSelected) action()        {}
func (TrainingUpdated) action()         {}
func (EvaluationSelected) action()      {}
func (Notify) action()                  {}
func (SearchChanged) action()           {}
