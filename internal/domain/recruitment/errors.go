package recruitment

import "github.com/go-faster/errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("candidate not found for job")
	ErrInvalidStatus       = errors.New("invalid candidate status")
	ErrRecruiterNotFound   = errors.New("recruiter is not an employee")
	ErrJobNotOpen          = errors.New("job is not open")
	ErrEmptyUpdate         = errors.New("nothing to update")
)
