package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"folha/internal/domain/employee"
)

// fakeStore is an in-memory StoreAPI that mimics the transactional
// contract of the real store: SaveRun either writes everything or
// nothing, and processed adjustments are immutable.
type fakeStore struct {
	employees   map[string]employee.Employee
	adjustments map[string]Adjustment
	runs        map[string]Run
	nextID      int

	saveRunErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   make(map[string]employee.Employee),
		adjustments: make(map[string]Adjustment),
		runs:        make(map[string]Run),
	}
}

func (f *fakeStore) addEmployee(emp employee.Employee) {
	f.employees[emp.ID] = emp
}

func (f *fakeStore) ListAdjustments(_ context.Context, employeeID string, includeProcessed bool) ([]Adjustment, error) {
	var out []Adjustment
	for _, adj := range f.adjustments {
		if adj.EmployeeID != employeeID {
			continue
		}
		if adj.Processed && !includeProcessed {
			continue
		}
		out = append(out, adj)
	}
	return out, nil
}

func (f *fakeStore) CreateAdjustment(_ context.Context, adj Adjustment) (string, error) {
	f.nextID++
	adj.ID = fmt.Sprintf("adj-%d", f.nextID)
	adj.CreatedAt = time.Now()
	f.adjustments[adj.ID] = adj
	return adj.ID, nil
}

func (f *fakeStore) DeleteAdjustment(_ context.Context, employeeID, adjustmentID string) error {
	adj, ok := f.adjustments[adjustmentID]
	if !ok || adj.EmployeeID != employeeID || adj.Processed {
		return ErrAdjustmentNotFound
	}
	delete(f.adjustments, adjustmentID)
	return nil
}

func (f *fakeStore) RunExists(_ context.Context, month string) (bool, error) {
	_, ok := f.runs[month]
	return ok, nil
}

func (f *fakeStore) ListRuns(_ context.Context) ([]Run, error) {
	var out []Run
	for _, run := range f.runs {
		out = append(out, run)
	}
	return out, nil
}

func (f *fakeStore) GetRun(_ context.Context, month string) (*Run, error) {
	run, ok := f.runs[month]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &run, nil
}

func (f *fakeStore) GetLineItem(_ context.Context, month, employeeID string) (*LineItem, error) {
	run, ok := f.runs[month]
	if !ok {
		return nil, ErrRunNotFound
	}
	for i := range run.Items {
		if run.Items[i].EmployeeID == employeeID {
			return &run.Items[i], nil
		}
	}
	return nil, ErrRunNotFound
}

func (f *fakeStore) SnapshotActiveEmployees(_ context.Context) ([]EmployeeSnapshot, error) {
	var out []EmployeeSnapshot
	for _, emp := range f.employees {
		if emp.Status != employee.StatusActive {
			continue
		}
		snap := EmployeeSnapshot{Employee: emp}
		for _, adj := range f.adjustments {
			if adj.EmployeeID == emp.ID && !adj.Processed {
				snap.Adjustments = append(snap.Adjustments, adj)
			}
		}
		out = append(out, snap)
	}
	return out, nil
}

func (f *fakeStore) SaveRun(_ context.Context, run Run, processedIDs []string) error {
	if f.saveRunErr != nil {
		return f.saveRunErr
	}
	if _, ok := f.runs[run.Month]; ok {
		return ErrRunExists
	}
	for _, id := range processedIDs {
		adj, ok := f.adjustments[id]
		if !ok || adj.Processed {
			return ErrSnapshotStale
		}
	}
	for _, id := range processedIDs {
		adj := f.adjustments[id]
		adj.Processed = true
		adj.PayPeriod = run.Month
		f.adjustments[id] = adj
	}
	f.runs[run.Month] = run
	return nil
}

func newTestService(store StoreAPI) *Service {
	svc := NewService(store, DefaultRules())
	svc.now = func() time.Time { return time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC) }
	return svc
}

func TestProcessRunRoundTrip(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(*testEmployee())

	svc := newTestService(store)
	ctx := context.Background()

	bonus, err := svc.AddAdjustment(ctx, "emp-1", Adjustment{
		Kind: KindBonus, Amount: 2000, Description: "performance", EffectiveDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("AddAdjustment bonus: %v", err)
	}
	deduction, err := svc.AddAdjustment(ctx, "emp-1", Adjustment{
		Kind: KindDeduction, Amount: 1000, Description: "advance repayment", EffectiveDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("AddAdjustment deduction: %v", err)
	}

	run, err := svc.ProcessRun(ctx, "2025-03")
	if err != nil {
		t.Fatalf("ProcessRun: %v", err)
	}

	if run.Month != "2025-03" {
		t.Errorf("run.Month = %q, want 2025-03", run.Month)
	}
	if run.Status != RunStatusProcessed {
		t.Errorf("run.Status = %q, want %q", run.Status, RunStatusProcessed)
	}
	if len(run.Items) != 1 {
		t.Fatalf("run has %d line items, want 1", len(run.Items))
	}

	item := run.Items[0]
	if item.Net != 91650 {
		t.Errorf("line item net = %v, want 91650", item.Net)
	}
	if run.TotalNet != 91650 || run.TotalGross != 107000 || run.TotalDeductions != 15350 {
		t.Errorf("run totals = %v/%v/%v, want 107000/15350/91650",
			run.TotalGross, run.TotalDeductions, run.TotalNet)
	}

	for _, id := range []string{bonus.ID, deduction.ID} {
		adj := store.adjustments[id]
		if !adj.Processed {
			t.Errorf("adjustment %s not marked processed after run", id)
		}
		if adj.PayPeriod != "2025-03" {
			t.Errorf("adjustment %s payPeriod = %q, want 2025-03", id, adj.PayPeriod)
		}
	}

	active, err := svc.ListAdjustments(ctx, "emp-1", false)
	if err != nil {
		t.Fatalf("ListAdjustments: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active adjustment list has %d entries after run, want 0", len(active))
	}
}

func TestProcessRunRejectsDuplicateMonth(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(*testEmployee())
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.ProcessRun(ctx, "2025-03"); err != nil {
		t.Fatalf("first ProcessRun: %v", err)
	}
	if _, err := svc.ProcessRun(ctx, "2025-03"); !errors.Is(err, ErrRunExists) {
		t.Errorf("second ProcessRun err = %v, want ErrRunExists", err)
	}
}

func TestProcessRunRejectsInvalidMonth(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	for _, month := range []string{"", "2025", "2025-13", "march", "2025-3"} {
		if _, err := svc.ProcessRun(ctx, month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("ProcessRun(%q) err = %v, want ErrInvalidMonth", month, err)
		}
	}
}

func TestProcessRunExcludesArchivedEmployees(t *testing.T) {
	store := newFakeStore()
	active := *testEmployee()
	archived := *testEmployee()
	archived.ID = "emp-2"
	archived.Status = employee.StatusArchived
	store.addEmployee(active)
	store.addEmployee(archived)

	svc := newTestService(store)
	run, err := svc.ProcessRun(context.Background(), "2025-04")
	if err != nil {
		t.Fatalf("ProcessRun: %v", err)
	}
	if len(run.Items) != 1 {
		t.Fatalf("run has %d line items, want 1", len(run.Items))
	}
	if run.Items[0].EmployeeID != active.ID {
		t.Errorf("line item employee = %q, want %q", run.Items[0].EmployeeID, active.ID)
	}
}

func TestProcessRunLeavesNothingOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(*testEmployee())
	store.saveRunErr = errors.New("connection lost")

	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.AddAdjustment(ctx, "emp-1", Adjustment{
		Kind: KindBonus, Amount: 500, Description: "spot", EffectiveDate: time.Now(),
	}); err != nil {
		t.Fatalf("AddAdjustment: %v", err)
	}

	if _, err := svc.ProcessRun(ctx, "2025-05"); err == nil {
		t.Fatal("ProcessRun succeeded despite store failure")
	}

	active, _ := svc.ListAdjustments(ctx, "emp-1", false)
	if len(active) != 1 {
		t.Errorf("adjustment was consumed by a failed run")
	}
	if exists, _ := store.RunExists(ctx, "2025-05"); exists {
		t.Errorf("run was recorded despite store failure")
	}
}

func TestAddAdjustmentValidation(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()
	valid := Adjustment{Kind: KindBonus, Amount: 100, Description: "ok", EffectiveDate: time.Now()}

	tests := []struct {
		name   string
		mutate func(*Adjustment)
	}{
		{"unknown kind", func(a *Adjustment) { a.Kind = "refund" }},
		{"zero amount", func(a *Adjustment) { a.Amount = 0 }},
		{"negative amount", func(a *Adjustment) { a.Amount = -50 }},
		{"blank description", func(a *Adjustment) { a.Description = "   " }},
		{"missing date", func(a *Adjustment) { a.EffectiveDate = time.Time{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adj := valid
			tc.mutate(&adj)
			if _, err := svc.AddAdjustment(ctx, "emp-1", adj); !errors.Is(err, ErrInvalidAdjustment) {
				t.Errorf("err = %v, want ErrInvalidAdjustment", err)
			}
		})
	}

	if _, err := svc.AddAdjustment(ctx, "emp-1", valid); err != nil {
		t.Errorf("valid adjustment rejected: %v", err)
	}
}

func TestAddAdjustmentAlwaysStartsUnprocessed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	adj, err := svc.AddAdjustment(context.Background(), "emp-1", Adjustment{
		Kind:          KindBonus,
		Amount:        100,
		Description:   "ok",
		EffectiveDate: time.Now(),
		Processed:     true,
		PayPeriod:     "2024-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if adj.Processed || adj.PayPeriod != "" {
		t.Errorf("new adjustment processed=%v payPeriod=%q, want unprocessed and untagged", adj.Processed, adj.PayPeriod)
	}
}

func TestRemoveAdjustmentRefusesProcessed(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(*testEmployee())
	svc := newTestService(store)
	ctx := context.Background()

	adj, err := svc.AddAdjustment(ctx, "emp-1", Adjustment{
		Kind: KindBonus, Amount: 100, Description: "ok", EffectiveDate: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ProcessRun(ctx, "2025-06"); err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveAdjustment(ctx, "emp-1", adj.ID); !errors.Is(err, ErrAdjustmentNotFound) {
		t.Errorf("removing processed adjustment err = %v, want ErrAdjustmentNotFound", err)
	}
}

func TestPreviewUsesUnprocessedAdjustmentsOnly(t *testing.T) {
	store := newFakeStore()
	emp := testEmployee()
	store.addEmployee(*emp)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.AddAdjustment(ctx, emp.ID, Adjustment{
		Kind: KindBonus, Amount: 2000, Description: "spot", EffectiveDate: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	before, err := svc.Preview(ctx, emp)
	if err != nil {
		t.Fatal(err)
	}
	if before.Bonuses != 2000 {
		t.Errorf("preview bonuses = %v, want 2000", before.Bonuses)
	}

	if _, err := svc.ProcessRun(ctx, "2025-07"); err != nil {
		t.Fatal(err)
	}

	after, err := svc.Preview(ctx, emp)
	if err != nil {
		t.Fatal(err)
	}
	if after.Bonuses != 0 {
		t.Errorf("preview bonuses after run = %v, want 0", after.Bonuses)
	}
}

func TestPreviewNilEmployee(t *testing.T) {
	svc := newTestService(newFakeStore())
	b, err := svc.Preview(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if b != (Breakdown{}) {
		t.Errorf("Preview(nil) = %+v, want zero breakdown", b)
	}
}
