package payroll

const (
	KindBonus     = "bonus"
	KindDeduction = "deduction"

	RunStatusProcessed = "processed"
)
