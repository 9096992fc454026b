package employee

import "time"

type Employee struct {
	ID                     string     `json:"id"`
	EmployeeNumber         string     `json:"employeeNumber"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Position               string     `json:"position"`
	Department             string     `json:"department"`
	TaxID                  string     `json:"taxId,omitempty"`
	EmploymentType         string     `json:"employmentType"`
	Salary                 float64    `json:"salary"`
	FoodAllowance          float64    `json:"foodAllowance"`
	CommunicationAllowance float64    `json:"communicationAllowance"`
	AttendanceBonus        float64    `json:"attendanceBonus"`
	AssiduityBonus         float64    `json:"assiduityBonus"`
	JoinDate               *time.Time `json:"joinDate,omitempty"`
	TerminationDate        *time.Time `json:"terminationDate,omitempty"`
	Status                 string     `json:"status"`
	ArchiveReason          string     `json:"archiveReason,omitempty"`
	WorkLocation           string     `json:"workLocation,omitempty"`
	BankName               string     `json:"bankName,omitempty"`
	BankAccount            string     `json:"bankAccount,omitempty"`
	Address                string     `json:"address,omitempty"`
	Country                string     `json:"country,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// TotalAllowances sums the four fixed monthly allowances. Unset fields
// are zero and flow through the sum unchanged.
func (e Employee) TotalAllowances() float64 {
	return e.FoodAllowance + e.CommunicationAllowance + e.AttendanceBonus + e.AssiduityBonus
}
