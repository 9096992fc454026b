package employee

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	store    StoreAPI
	defaults CompensationDefaults
	now      func() time.Time
}

func NewService(store StoreAPI, defaults CompensationDefaults) *Service {
	return &Service{store: store, defaults: defaults, now: time.Now}
}

func (s *Service) List(ctx context.Context, status string) ([]Employee, error) {
	return s.store.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, employeeID string) (*Employee, error) {
	return s.store.Get(ctx, employeeID)
}

// NewEmployee is the creation payload. Allowance fields are pointers so
// an omitted field takes the company default while an explicit zero
// stays zero.
type NewEmployee struct {
	EmployeeNumber         string     `json:"employeeNumber"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Position               string     `json:"position"`
	Department             string     `json:"department"`
	TaxID                  string     `json:"taxId"`
	EmploymentType         string     `json:"employmentType"`
	Salary                 float64    `json:"salary"`
	FoodAllowance          *float64   `json:"foodAllowance"`
	CommunicationAllowance *float64   `json:"communicationAllowance"`
	AttendanceBonus        *float64   `json:"attendanceBonus"`
	AssiduityBonus         *float64   `json:"assiduityBonus"`
	JoinDate               *time.Time `json:"joinDate"`
	WorkLocation           string     `json:"workLocation"`
	BankName               string     `json:"bankName"`
	BankAccount            string     `json:"bankAccount"`
	Address                string     `json:"address"`
	Country                string     `json:"country"`
}

func (s *Service) Create(ctx context.Context, payload NewEmployee) (*Employee, error) {
	emp := Employee{
		EmployeeNumber:         strings.TrimSpace(payload.EmployeeNumber),
		Name:                   strings.TrimSpace(payload.Name),
		Email:                  strings.TrimSpace(payload.Email),
		Position:               payload.Position,
		Department:             payload.Department,
		TaxID:                  payload.TaxID,
		EmploymentType:         payload.EmploymentType,
		Salary:                 payload.Salary,
		FoodAllowance:          orDefault(payload.FoodAllowance, s.defaults.FoodAllowance),
		CommunicationAllowance: orDefault(payload.CommunicationAllowance, s.defaults.CommunicationAllowance),
		AttendanceBonus:        orDefault(payload.AttendanceBonus, s.defaults.AttendanceBonus),
		AssiduityBonus:         orDefault(payload.AssiduityBonus, s.defaults.AssiduityBonus),
		JoinDate:               payload.JoinDate,
		WorkLocation:           payload.WorkLocation,
		BankName:               payload.BankName,
		BankAccount:            payload.BankAccount,
		Address:                payload.Address,
		Country:                payload.Country,
		Status:                 StatusActive,
	}
	if err := validate(emp); err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, emp)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, employeeID string, emp Employee) (*Employee, error) {
	emp.Name = strings.TrimSpace(emp.Name)
	emp.Email = strings.TrimSpace(emp.Email)
	if err := validate(emp); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, employeeID, emp); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, employeeID)
}

// Archive is the one-way active -> archived transition. Status, reason
// and termination date are set in a single store update so the record
// never carries a partial transition.
func (s *Service) Archive(ctx context.Context, employeeID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyArchiveReason
	}
	return s.store.Archive(ctx, employeeID, strings.TrimSpace(reason), s.now().UTC())
}

func validate(emp Employee) error {
	if emp.Name == "" || emp.Email == "" || emp.EmploymentType == "" {
		return ErrMissingRequired
	}
	if emp.Salary < 0 || emp.FoodAllowance < 0 || emp.CommunicationAllowance < 0 ||
		emp.AttendanceBonus < 0 || emp.AssiduityBonus < 0 {
		return ErrNegativeSalary
	}
	for _, t := range EmploymentTypes() {
		if emp.EmploymentType == t {
			return nil
		}
	}
	return ErrUnknownEmployment
}

func orDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
