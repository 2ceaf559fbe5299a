package state

import (
	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
)

// Reduce returns the state after a. It never mutates s: slices that change
// are copied.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Navigate:
		s.View = a.View
		switch a.View {
		case ViewEmployees:
			s.Selected.EmployeeID, s.Employee, s.EmployeeFallback = "", nil, false
		case ViewDepartments:
			s.Selected.DepartmentID, s.DepartmentMembers = "", nil
		case ViewRecruitment:
			s.Selected.JobID = ""
		case ViewTrainings:
			s.Selected.TrainingID = ""
		case ViewEvaluations:
			s.Selected.EvaluationID = ""
		}

	case LoadStarted:
		s.Loading, s.Error = true, ""
	case EmployeesLoaded:
		s.Employees, s.Loading, s.Error = a.Items, false, ""
	case EmployeesFailed:
		s.Loading, s.Error = false, a.Err

	case DepartmentsLoaded:
		s.Departments = a.Items
	case JobsLoaded:
		s.Jobs = a.Items
	case CandidatesLoaded:
		s.Candidates = a.Items
	case TrainingsLoaded:
		s.Trainings = a.Items
	case EvaluationsLoaded:
		s.Evaluations = a.Items

	case EmployeeSelected:
		s.Selected.EmployeeID = a.ID
		s.DetailSeq = a.Seq
		s.Employee, s.EmployeeFallback = nil, false
	case EmployeeDetailLoaded:
		if a.Seq != s.DetailSeq {
			return s
		}
		detail := a.Detail
		s.Employee, s.EmployeeFallback = &detail, false
		s.View = ViewEmployeeDetail
	case EmployeeDetailFailed:
		if a.Seq != s.DetailSeq {
			return s
		}
		s.Notice = a.Err
		if row, ok := find(s.Employees, s.Selected.EmployeeID, func(e employees.Summary) string { return e.ID }); ok {
			s.Employee = &employees.Detail{
				Employee: row.Employee,
				Financials: employees.Financials{
					BaseSalaryGross: row.BaseSalaryGross,
					NetSalary:       row.NetSalary,
					Deductions:      row.Deductions,
				},
			}
			s.EmployeeFallback = true
			s.View = ViewEmployeeDetail
		}
	case EmployeeRemoved:
		if s.Selected.EmployeeID == a.ID {
			s.Selected.EmployeeID, s.Employee, s.EmployeeFallback = "", nil, false
			s.View = ViewEmployees
		}

	case DepartmentSelected:
		s.Selected.DepartmentID, s.DepartmentMembers = a.ID, nil
		s.View = ViewDepartmentDetail
	case DepartmentMembersLoaded:
		if a.ID == s.Selected.DepartmentID {
			s.DepartmentMembers = a.Members
		}
	case DepartmentUpdated:
		s.Departments = replace(s.Departments, a.Department, func(d departments.Department) string { return d.ID })

	case JobSelected:
		s.Selected.JobID = a.ID
		s.View = ViewJobDetail
	case JobUpdated:
		s.Jobs = replace(s.Jobs, a.Job, func(j recruitment.Job) string { return j.ID })
	case CandidateUpdated:
		s.Candidates = replace(s.Candidates, a.Candidate, func(c recruitment.Candidate) string { return c.ID + "/" + c.JobID })

	case TrainingSelected:
		s.Selected.TrainingID = a.ID
		s.View = ViewTrainingDetail
	case TrainingUpdated:
		s.Trainings = replace(s.Trainings, a.Training, func(t trainings.Program) string { return t.ID })

	case EvaluationSelected:
		s.Selected.EvaluationID = a.ID
		s.View = ViewEvaluationDetail

	case Notify:
		s.Notice = a.Message
	case SearchChanged:
		s.Search = a.Query
	}
	return s
}

// replace returns a copy of items with the element sharing item's key
// swapped for item, or item appended when none does.
func replace[T any](items []T, item T, key func(T) string) []T {
	out := make([]T, 0, len(items)+1)
	found := false
	for _, it := range items {
		if key(it) == key(item) {
			out = append(out, item)
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, item)
	}
	return out
}
