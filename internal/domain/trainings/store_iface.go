package trainings

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Program, error)
	Get(ctx context.Context, id int64) (Program, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error)
	Enroll(ctx context.Context, trainingID, employeeID int64) (bool, error)
	RemoveParticipant(ctx context.Context, trainingID, employeeID int64) error
}
