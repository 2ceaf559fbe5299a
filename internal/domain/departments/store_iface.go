package departments

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Department, error)
	Get(ctx context.Context, id int64) (Department, error)
	Members(ctx context.Context, id int64) ([]Member, error)
	SetManager(ctx context.Context, id int64, managerID *int64) error
}
