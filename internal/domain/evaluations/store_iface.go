package evaluations

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Evaluation, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Evaluation, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	Create(ctx context.Context, in NewEvaluation) (int64, error)
}
