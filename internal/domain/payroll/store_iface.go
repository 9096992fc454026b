package payroll

import "context"

type StoreAPI interface {
	ListAdjustments(ctx context.Context, employeeID string, includeProcessed bool) ([]Adjustment, error)
	CreateAdjustment(ctx context.Context, adj Adjustment) (string, error)
	DeleteAdjustment(ctx context.Context, employeeID, adjustmentID string) error

	RunExists(ctx context.Context, month string) (bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, month string) (*Run, error)
	GetLineItem(ctx context.Context, month, employeeID string) (*LineItem, error)

	SnapshotActiveEmployees(ctx context.Context) ([]EmployeeSnapshot, error)
	// SaveRun persists the run, its line items, and the processed flag
	// for exactly the given adjustment IDs in one transaction.
	SaveRun(ctx context.Context, run Run, processedIDs []string) error
}
