package payroll

import (
	"time"

	"folha/internal/domain/employee"
)

// Adjustment is a discretionary one-off bonus or deduction. It is
// created unprocessed, counted into exactly one payroll run, and from
// then on is immutable history tagged with that run's month.
type Adjustment struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Kind          string    `json:"kind"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	EffectiveDate time.Time `json:"effectiveDate"`
	PayPeriod     string    `json:"payPeriod,omitempty"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Breakdown is the full decomposition of one employee's pay. Every
// consumer (preview endpoint, run line items, payslips, register
// export) reads these figures verbatim; nothing re-derives net pay.
type Breakdown struct {
	BaseSalary      float64 `json:"baseSalary"`
	TotalAllowances float64 `json:"totalAllowances"`
	Gross           float64 `json:"gross"`
	IncomeTax       float64 `json:"incomeTax"`
	SocialSecurity  float64 `json:"socialSecurity"`
	Bonuses         float64 `json:"bonuses"`
	Deductions      float64 `json:"deductions"`
	TotalDeductions float64 `json:"totalDeductions"`
	Net             float64 `json:"net"`
}

// LineItem is the frozen projection of one employee for one run. The
// name is captured at run time so later employee edits do not rewrite
// history.
type LineItem struct {
	EmployeeID      string       `json:"employeeId"`
	EmployeeNumber  string       `json:"employeeNumber"`
	Name            string       `json:"name"`
	BaseSalary      float64      `json:"baseSalary"`
	Allowances      float64      `json:"allowances"`
	Gross           float64      `json:"gross"`
	TotalDeductions float64      `json:"totalDeductions"`
	Net             float64      `json:"net"`
	Adjustments     []Adjustment `json:"adjustments"`
}

// Run is one month's payroll, append-only once written.
type Run struct {
	ID              string     `json:"id"`
	Month           string     `json:"month"`
	ProcessedAt     time.Time  `json:"processedAt"`
	Status          string     `json:"status"`
	TotalGross      float64    `json:"totalGross"`
	TotalDeductions float64    `json:"totalDeductions"`
	TotalNet        float64    `json:"totalNet"`
	Items           []LineItem `json:"items,omitempty"`
}

// EmployeeSnapshot pairs an active employee with the unprocessed
// adjustments read in the same snapshot, so a run counts and marks the
// exact same set.
type EmployeeSnapshot struct {
	Employee    employee.Employee
	Adjustments []Adjustment
}
