package employee

const (
	StatusActive   = "active"
	StatusArchived = "archived"

	TypeFullTime   = "Full Time"
	TypePartTime   = "Part Time"
	TypeContractor = "Contractor"
	TypeIntern     = "Estagiário(a)"
)

func EmploymentTypes() []string {
	return []string{TypeFullTime, TypePartTime, TypeContractor, TypeIntern}
}

// CompensationDefaults are the company-wide allowance amounts applied
// when an employee is created without explicit figures. Injected so
// policy changes stay out of the service logic.
type CompensationDefaults struct {
	FoodAllowance          float64
	CommunicationAllowance float64
	AttendanceBonus        float64
	AssiduityBonus         float64
}

func DefaultCompensation() CompensationDefaults {
	return CompensationDefaults{
		FoodAllowance:          6500,
		CommunicationAllowance: 3500,
		AttendanceBonus:        5000,
		AssiduityBonus:         5000,
	}
}
