package employees

import "github.com/go-faster/errors"

var (
	ErrNotFound          = errors.New("employee not found")
	ErrNIFExists         = errors.New("nif already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidDepartment = errors.New("department not found")
	ErrInvalidSalary     = errors.New("gross salary must not be negative")
)
