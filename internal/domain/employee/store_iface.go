package employee

import (
	"context"
	"time"
)

type StoreAPI interface {
	List(ctx context.Context, status string) ([]Employee, error)
	Get(ctx context.Context, employeeID string) (*Employee, error)
	Create(ctx context.Context, emp Employee) (string, error)
	Update(ctx context.Context, employeeID string, emp Employee) error
	Archive(ctx context.Context, employeeID, reason string, terminationDate time.Time) error
}
