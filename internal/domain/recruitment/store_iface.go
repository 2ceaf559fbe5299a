package recruitment

import "context"

type StoreAPI interface {
	ListJobs(ctx context.Context) ([]Job, error)
	GetJob(ctx context.Context, id int64) (Job, error)
	CloseJob(ctx context.Context, id int64) error
	ListCandidates(ctx context.Context) ([]Candidate, error)
	ListCandidatesByJob(ctx context.Context, jobID int64) ([]Candidate, error)
	GetCandidate(ctx context.Context, candidateID, jobID int64) (Candidate, error)
	UpdateApplication(ctx context.Context, candidateID, jobID int64, storeStatus string, upd CandidateUpdate) error
}
