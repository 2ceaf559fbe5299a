// Package state holds the client view state and the actions that change it.
// Reduce is pure; Store serializes dispatches and notifies subscribers.
package state

import (
	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
)

type View string

const (
	ViewEmployees        View = "employees_list"
	ViewEmployeeDetail   View = "employees_detail"
	ViewDepartments      View = "departments_list"
	ViewDepartmentDetail View = "departments_detail"
	ViewRecruitment      View = "recruitment_list"
	ViewJobDetail        View = "recruitment_detail"
	ViewTrainings        View = "trainings_list"
	ViewTrainingDetail   View = "trainings_detail"
	ViewEvaluations      View = "evaluations_list"
	ViewEvaluationForm   View = "evaluations_form"
	ViewEvaluationDetail View = "evaluations_detail"
)

// Selection points at the entity shown by a detail view.
type Selection struct {
	EmployeeID   string
	DepartmentID string
	JobID        string
	TrainingID   string
	EvaluationID string
}

type State struct {
	View View

	Employees   []employees.Summary
	Departments []departments.Department
	Jobs        []recruitment.Job
	Candidates  []recruitment.Candidate
	Trainings   []trainings.Program
	Evaluations []evaluations.Evaluation

	Selected Selection
	// Employee is the detail record of Selected.EmployeeID once fetched.
	Employee *employees.Detail
	// EmployeeFallback is set when the detail fetch failed and Employee was
	// built from the list entry.
	EmployeeFallback  bool
	DepartmentMembers []departments.Member

	// DetailSeq identifies the latest employee selection. Detail results
	// carrying another sequence are stale and ignored.
	DetailSeq uint64

	Loading bool
	// Error is the list-level failure shown with a retry action.
	Error string
	// Notice is the latest mutation failure or confirmation message.
	Notice string
	Search string
}

func Initial() State {
	return State{View: ViewEmployees, Loading: true}
}

// Job returns the selected job opening.
func (s State) Job() (recruitment.Job, bool) {
	return find(s.Jobs, s.Selected.JobID, func(j recruitment.Job) string { return j.ID })
}

func (s State) Training() (trainings.Program, bool) {
	return find(s.Trainings, s.Selected.TrainingID, func(t trainings.Program) string { return t.ID })
}

func (s State) Department() (departments.Department, bool) {
	return find(s.Departments, s.Selected.DepartmentID, func(d departments.Department) string { return d.ID })
}

func (s State) Evaluation() (evaluations.Evaluation, bool) {
	return find(s.Evaluations, s.Selected.EvaluationID, func(e evaluations.Evaluation) string { return e.ID })
}

// JobCandidates lists the candidates of the selected job.
func (s State) JobCandidates() []recruitment.Candidate {
	var out []recruitment.Candidate
	for _, c := range s.Candidates {
		if c.JobID == s.Selected.JobID {
			out = append(out, c)
		}
	}
	return out
}

func find[T any](items []T, id string, key func(T) string) (T, bool) {
	for _, it := range items {
		if key(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
