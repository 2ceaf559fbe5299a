package evaluations

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Evaluation, error) {
	return s.Store.List(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]Evaluation, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

// Create records an evaluation. A zero date means today.
func (s *Service) Create(ctx context.Context, in NewEvaluation) (int64, error) {
	if in.Score < MinScore || in.Score > MaxScore {
		return 0, ErrInvalidScore
	}
	if in.Date.IsZero() {
		in.Date = s.Now()
	}

	ok, err := s.Store.EmployeeExists(ctx, in.EmployeeID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrEmployeeNotFound
	}
	if in.ReviewerID != in.EmployeeID {
		ok, err = s.Store.EmployeeExists(ctx, in.ReviewerID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrReviewerNotFound
		}
	}

	id, err := s.Store.Create(ctx, in)
	if err != nil {
		return 0, errors.Wrap(err, "create evaluation")
	}
	return id, nil
}
