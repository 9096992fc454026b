package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"folha/internal/domain/employee"
)

type Service struct {
	store StoreAPI
	rules Rules
	now   func() time.Time
}

func NewService(store StoreAPI, rules Rules) *Service {
	return &Service{store: store, rules: rules, now: time.Now}
}

func (s *Service) Rules() Rules {
	return s.rules
}

// Preview computes the current pay breakdown for one employee from the
// live unprocessed adjustment set. Nothing is mutated.
func (s *Service) Preview(ctx context.Context, emp *employee.Employee) (Breakdown, error) {
	if emp == nil {
		return Breakdown{}, nil
	}
	adjustments, err := s.store.ListAdjustments(ctx, emp.ID, false)
	if err != nil {
		return Breakdown{}, err
	}
	return Calculate(emp, adjustments, s.rules), nil
}

func (s *Service) ListAdjustments(ctx context.Context, employeeID string, includeProcessed bool) ([]Adjustment, error) {
	return s.store.ListAdjustments(ctx, employeeID, includeProcessed)
}

func (s *Service) AddAdjustment(ctx context.Context, employeeID string, adj Adjustment) (Adjustment, error) {
	adj.EmployeeID = employeeID
	adj.Description = strings.TrimSpace(adj.Description)
	if adj.Kind != KindBonus && adj.Kind != KindDeduction {
		return Adjustment{}, ErrInvalidAdjustment
	}
	if adj.Amount <= 0 || adj.Description == "" || adj.EffectiveDate.IsZero() {
		return Adjustment{}, ErrInvalidAdjustment
	}
	adj.Processed = false
	adj.PayPeriod = ""

	id, err := s.store.CreateAdjustment(ctx, adj)
	if err != nil {
		return Adjustment{}, err
	}
	adj.ID = id
	return adj, nil
}

// RemoveAdjustment deletes an unprocessed entry. Processed entries are
// payroll history and the store refuses to touch them.
func (s *Service) RemoveAdjustment(ctx context.Context, employeeID, adjustmentID string) error {
	return s.store.DeleteAdjustment(ctx, employeeID, adjustmentID)
}

func (s *Service) ListRuns(ctx context.Context) ([]Run, error) {
	return s.store.ListRuns(ctx)
}

func (s *Service) GetRun(ctx context.Context, month string) (*Run, error) {
	return s.store.GetRun(ctx, month)
}

func (s *Service) GetLineItem(ctx context.Context, month, employeeID string) (*LineItem, error) {
	return s.store.GetLineItem(ctx, month, employeeID)
}

// ProcessRun freezes one month's payroll. It snapshots the active
// employees with their unprocessed adjustments, computes every line
// item from that snapshot, and hands the store one transactional write:
// append the run and mark exactly the counted adjustments processed.
// An adjustment can therefore never be counted without being marked,
// nor marked without being counted.
func (s *Service) ProcessRun(ctx context.Context, month string) (*Run, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, ErrInvalidMonth
	}

	exists, err := s.store.RunExists(ctx, month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRunExists
	}

	snapshots, err := s.store.SnapshotActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}

	run := Run{
		ID:          uuid.NewString(),
		Month:       month,
		ProcessedAt: s.now().UTC(),
		Status:      RunStatusProcessed,
	}

	var processedIDs []string
	for _, snap := range snapshots {
		emp := snap.Employee
		b := Calculate(&emp, snap.Adjustments, s.rules)

		item := LineItem{
			EmployeeID:      emp.ID,
			EmployeeNumber:  emp.EmployeeNumber,
			Name:            emp.Name,
			BaseSalary:      b.BaseSalary,
			Allowances:      b.TotalAllowances,
			Gross:           b.Gross,
			TotalDeductions: b.TotalDeductions,
			Net:             b.Net,
			Adjustments:     snap.Adjustments,
		}
		run.Items = append(run.Items, item)
		run.TotalGross += b.Gross
		run.TotalDeductions += b.TotalDeductions
		run.TotalNet += b.Net

		for _, adj := range snap.Adjustments {
			processedIDs = append(processedIDs, adj.ID)
		}
	}

	if err := s.store.SaveRun(ctx, run, processedIDs); err != nil {
		return nil, err
	}
	return &run, nil
}
