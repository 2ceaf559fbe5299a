package trainings

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Program, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Program, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

// Enroll is idempotent: enrolling an already enrolled employee succeeds
// without adding a row.
func (s *Service) Enroll(ctx context.Context, trainingID, employeeID int64) (Program, bool, error) {
	added, err := s.Store.Enroll(ctx, trainingID, employeeID)
	if err != nil {
		return Program{}, false, err
	}
	p, err := s.Store.Get(ctx, trainingID)
	return p, added, err
}

func (s *Service) RemoveParticipant(ctx context.Context, trainingID, employeeID int64) (Program, error) {
	if err := s.Store.RemoveParticipant(ctx, trainingID, employeeID); err != nil {
		return Program{}, err
	}
	return s.Store.Get(ctx, trainingID)
}
