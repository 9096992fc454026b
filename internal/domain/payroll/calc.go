package payroll

import "folha/internal/domain/employee"

// Calculate produces the pay breakdown for one employee from the fixed
// compensation profile and the unprocessed adjustments. It is a pure
// function: callers pass the adjustment snapshot, and already-processed
// entries are skipped even if a full historical list is passed in.
//
// A nil employee yields an all-zero breakdown rather than an error; the
// zero values of optional profile fields flow through the arithmetic.
func Calculate(emp *employee.Employee, adjustments []Adjustment, rules Rules) Breakdown {
	var b Breakdown
	if emp == nil {
		return b
	}

	b.BaseSalary = emp.Salary
	b.TotalAllowances = emp.TotalAllowances()

	for _, adj := range adjustments {
		if adj.Processed {
			continue
		}
		switch adj.Kind {
		case KindBonus:
			b.Bonuses += adj.Amount
		case KindDeduction:
			b.Deductions += adj.Amount
		}
	}

	b.Gross = b.BaseSalary + b.TotalAllowances + b.Bonuses

	// IRPS and INPS apply to the base salary only.
	b.IncomeTax = rules.IncomeTax(b.BaseSalary)
	b.SocialSecurity = rules.SocialSecurity(b.BaseSalary, emp.EmploymentType)

	b.TotalDeductions = b.IncomeTax + b.SocialSecurity + b.Deductions
	b.Net = b.Gross - b.TotalDeductions
	return b
}
