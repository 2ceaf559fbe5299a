package evaluations

import "github.com/go-faster/errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrReviewerNotFound = errors.New("reviewer not found")
	ErrInvalidScore     = errors.New("score out of range")
)
