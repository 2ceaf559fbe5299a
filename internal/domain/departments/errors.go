package departments

import "github.com/go-faster/errors"

var (
	ErrNotFound        = errors.New("department not found")
	ErrManagerNotFound = errors.New("manager is not an employee")
)
