package employee

import "errors"

var (
	ErrNotFound           = errors.New("employee not found")
	ErrNotActive          = errors.New("employee is not active")
	ErrEmptyArchiveReason = errors.New("archive reason is required")
	ErrMissingRequired    = errors.New("name, email and employment type are required")
	ErrNegativeSalary     = errors.New("salary and allowances must not be negative")
	ErrUnknownEmployment  = errors.New("unknown employment type")
)
