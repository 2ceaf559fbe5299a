package recruitment

import (
	"context"
	"strconv"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) ListJobs(ctx context.Context) ([]Job, error) {
	return s.Store.ListJobs(ctx)
}

func (s *Service) GetJob(ctx context.Context, id int64) (Job, error) {
	return s.Store.GetJob(ctx, id)
}

func (s *Service) CloseJob(ctx context.Context, id int64) (Job, error) {
	if err := s.Store.CloseJob(ctx, id); err != nil {
		return Job{}, err
	}
	return s.Store.GetJob(ctx, id)
}

func (s *Service) ListCandidates(ctx context.Context) ([]Candidate, error) {
	return s.Store.ListCandidates(ctx)
}

func (s *Service) ListCandidatesByJob(ctx context.Context, jobID int64) ([]Candidate, error) {
	return s.Store.ListCandidatesByJob(ctx, jobID)
}

// UpdateCandidate applies upd to the application of candidateID for jobID
// only; other applications of the same candidate are untouched.
func (s *Service) UpdateCandidate(ctx context.Context, candidateID, jobID int64, upd CandidateUpdate) (Candidate, error) {
	if upd.Status == "" && upd.RecruiterID == nil && !upd.ClearRecruiter {
		return Candidate{}, ErrEmptyUpdate
	}
	var storeStatus string
	if upd.Status != "" {
		v, ok := ParseCandidateStatus(upd.Status)
		if !ok {
			return Candidate{}, ErrInvalidStatus
		}
		storeStatus = v
	}
	if upd.RecruiterID != nil && *upd.RecruiterID <= 0 {
		return Candidate{}, ErrRecruiterNotFound
	}
	if err := s.Store.UpdateApplication(ctx, candidateID, jobID, storeStatus, upd); err != nil {
		return Candidate{}, err
	}
	return s.Store.GetCandidate(ctx, candidateID, jobID)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
