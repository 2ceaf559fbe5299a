package trainings

import "github.com/go-faster/errors"

var (
	ErrNotFound         = errors.New("training not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotEnrolled      = errors.New("employee not enrolled")
)
