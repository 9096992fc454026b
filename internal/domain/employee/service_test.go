package employee

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	employees map[string]Employee
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{employees: make(map[string]Employee)}
}

func (f *fakeStore) List(_ context.Context, status string) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		if status != "" && emp.Status != status {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, employeeID string) (*Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (f *fakeStore) Create(_ context.Context, emp Employee) (string, error) {
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[emp.ID] = emp
	return emp.ID, nil
}

func (f *fakeStore) Update(_ context.Context, employeeID string, emp Employee) error {
	current, ok := f.employees[employeeID]
	if !ok {
		return ErrNotFound
	}
	emp.ID = employeeID
	emp.Status = current.Status
	emp.ArchiveReason = current.ArchiveReason
	emp.TerminationDate = current.TerminationDate
	f.employees[employeeID] = emp
	return nil
}

func (f *fakeStore) Archive(_ context.Context, employeeID, reason string, terminationDate time.Time) error {
	emp, ok := f.employees[employeeID]
	if !ok {
		return ErrNotFound
	}
	if emp.Status != StatusActive {
		return ErrNotActive
	}
	emp.Status = StatusArchived
	emp.ArchiveReason = reason
	emp.TerminationDate = &terminationDate
	f.employees[employeeID] = emp
	return nil
}

func validPayload() NewEmployee {
	return NewEmployee{
		Name:           "Maria Silva",
		Email:          "maria@example.cv",
		EmploymentType: TypeFullTime,
		Salary:         85000,
	}
}

func TestCreateAppliesAllowanceDefaults(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())

	emp, err := svc.Create(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if emp.FoodAllowance != 6500 {
		t.Errorf("FoodAllowance = %v, want 6500", emp.FoodAllowance)
	}
	if emp.CommunicationAllowance != 3500 {
		t.Errorf("CommunicationAllowance = %v, want 3500", emp.CommunicationAllowance)
	}
	if emp.AttendanceBonus != 5000 {
		t.Errorf("AttendanceBonus = %v, want 5000", emp.AttendanceBonus)
	}
	if emp.AssiduityBonus != 5000 {
		t.Errorf("AssiduityBonus = %v, want 5000", emp.AssiduityBonus)
	}
	if emp.TotalAllowances() != 20000 {
		t.Errorf("TotalAllowances() = %v, want 20000", emp.TotalAllowances())
	}
	if emp.Status != StatusActive {
		t.Errorf("Status = %q, want %q", emp.Status, StatusActive)
	}
}

func TestCreateKeepsExplicitZeroAllowance(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())

	zero := 0.0
	payload := validPayload()
	payload.FoodAllowance = &zero

	emp, err := svc.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if emp.FoodAllowance != 0 {
		t.Errorf("explicit zero FoodAllowance overwritten to %v", emp.FoodAllowance)
	}
	if emp.CommunicationAllowance != 3500 {
		t.Errorf("omitted CommunicationAllowance = %v, want default 3500", emp.CommunicationAllowance)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*NewEmployee)
		wantErr error
	}{
		{"missing name", func(p *NewEmployee) { p.Name = "  " }, ErrMissingRequired},
		{"missing email", func(p *NewEmployee) { p.Email = "" }, ErrMissingRequired},
		{"missing employment type", func(p *NewEmployee) { p.EmploymentType = "" }, ErrMissingRequired},
		{"unknown employment type", func(p *NewEmployee) { p.EmploymentType = "Temp" }, ErrUnknownEmployment},
		{"negative salary", func(p *NewEmployee) { p.Salary = -1 }, ErrNegativeSalary},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(&payload)
			if _, err := svc.Create(ctx, payload); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateRejectsNegativeAllowance(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())

	negative := -100.0
	payload := validPayload()
	payload.AttendanceBonus = &negative

	if _, err := svc.Create(context.Background(), payload); !errors.Is(err, ErrNegativeSalary) {
		t.Errorf("err = %v, want ErrNegativeSalary", err)
	}
}

func TestArchive(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, DefaultCompensation())
	fixed := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	emp, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Archive(ctx, emp.ID, "  contract ended  "); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	archived, err := svc.Get(ctx, emp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if archived.Status != StatusArchived {
		t.Errorf("Status = %q, want %q", archived.Status, StatusArchived)
	}
	if archived.ArchiveReason != "contract ended" {
		t.Errorf("ArchiveReason = %q, want trimmed reason", archived.ArchiveReason)
	}
	if archived.TerminationDate == nil || !archived.TerminationDate.Equal(fixed) {
		t.Errorf("TerminationDate = %v, want %v", archived.TerminationDate, fixed)
	}
}

func TestArchiveRequiresReason(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())

	for _, reason := range []string{"", "   "} {
		if err := svc.Archive(context.Background(), "emp-1", reason); !errors.Is(err, ErrEmptyArchiveReason) {
			t.Errorf("Archive(reason=%q) err = %v, want ErrEmptyArchiveReason", reason, err)
		}
	}
}

func TestArchiveTwiceFails(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())
	ctx := context.Background()

	emp, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Archive(ctx, emp.ID, "contract ended"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Archive(ctx, emp.ID, "again"); !errors.Is(err, ErrNotActive) {
		t.Errorf("second Archive err = %v, want ErrNotActive", err)
	}
}

func TestArchiveUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeStore(), DefaultCompensation())
	if err := svc.Archive(context.Background(), "missing", "reason"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateDoesNotTouchLifecycleFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, DefaultCompensation())
	ctx := context.Background()

	emp, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Archive(ctx, emp.ID, "contract ended"); err != nil {
		t.Fatal(err)
	}

	updated := *emp
	updated.Name = "Maria Santos"
	updated.Status = StatusActive

	after, err := svc.Update(ctx, emp.ID, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if after.Name != "Maria Santos" {
		t.Errorf("Name = %q, want updated name", after.Name)
	}
	if after.Status != StatusArchived {
		t.Errorf("Update changed status to %q; lifecycle transitions must go through Archive", after.Status)
	}
}
