package payroll

import "errors"

var (
	ErrRunExists          = errors.New("payroll already processed for this month")
	ErrRunNotFound        = errors.New("payroll run not found")
	ErrInvalidMonth       = errors.New("month must be in YYYY-MM format")
	ErrInvalidAdjustment  = errors.New("adjustment requires a kind, a positive amount, a description and a date")
	ErrAdjustmentNotFound = errors.New("adjustment not found or already processed")
	ErrSnapshotStale      = errors.New("adjustments changed while the run was processing")
)
