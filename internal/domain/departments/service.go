package departments

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Department, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Department, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Members(ctx context.Context, id int64) ([]Member, error) {
	return s.Store.Members(ctx, id)
}

// AssignManager persists the new manager and returns the updated department.
func (s *Service) AssignManager(ctx context.Context, id int64, managerID *int64) (Department, error) {
	if managerID != nil && *managerID <= 0 {
		return Department{}, ErrManagerNotFound
	}
	if err := s.Store.SetManager(ctx, id, managerID); err != nil {
		return Department{}, err
	}
	return s.Store.Get(ctx, id)
}
