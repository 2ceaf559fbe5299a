package employees

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Summary, error)
	GetProfile(ctx context.Context, id int64) (Employee, error)
	CurrentSalary(ctx context.Context, id int64) (float64, error)
	Benefits(ctx context.Context, id int64) ([]Benefit, error)
	SalaryHistory(ctx context.Context, id int64) ([]SalaryEntry, error)
	VacationHistory(ctx context.Context, id int64) ([]VacationRecord, error)
	JobHistory(ctx context.Context, id int64) ([]JobHistory, error)
	Dependents(ctx context.Context, id int64) ([]Dependent, error)
	Absences(ctx context.Context, id int64) ([]Absence, error)
	Create(ctx context.Context, in NewEmployee, netSalary float64) (int64, error)
	Update(ctx context.Context, id int64, ch Changes) error
	Delete(ctx context.Context, id int64) error
}
