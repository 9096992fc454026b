package payroll

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Bracket is one row of the IRPS withholding table. The deduction is a
// fixed offset subtracted after the rate is applied to the full base
// salary, not a marginal-band accumulation. Max == 0 means open-ended.
type Bracket struct {
	Min       float64         `json:"min"`
	Max       float64         `json:"max"`
	Rate      decimal.Decimal `json:"rate"`
	Deduction decimal.Decimal `json:"deduction"`
}

// Rules holds the statutory withholding parameters. They are injected
// into the calculator so a jurisdiction change never touches the
// calculation code.
type Rules struct {
	Brackets                 []Bracket       `json:"brackets"`
	SocialSecurityRate       decimal.Decimal `json:"socialSecurityRate"`
	InternSocialSecurityRate decimal.Decimal `json:"internSocialSecurityRate"`
	InternEmploymentType     string          `json:"internEmploymentType"`
}

// DefaultRules returns the Cape Verde IRPS schedule and INPS rates.
func DefaultRules() Rules {
	return Rules{
		Brackets: []Bracket{
			{Min: 0, Max: 36606, Rate: decimal.Zero, Deduction: decimal.Zero},
			{Min: 36607, Max: 80000, Rate: decimal.NewFromFloat(0.14), Deduction: decimal.NewFromInt(5125)},
			{Min: 80001, Max: 150000, Rate: decimal.NewFromFloat(0.21), Deduction: decimal.NewFromInt(10725)},
			{Min: 150001, Max: 0, Rate: decimal.NewFromFloat(0.25), Deduction: decimal.NewFromInt(16725)},
		},
		SocialSecurityRate:       decimal.NewFromFloat(0.085),
		InternSocialSecurityRate: decimal.NewFromFloat(0.08),
		InternEmploymentType:     "Estagiário(a)",
	}
}

// LoadRules reads a rules file so a deployment can swap the tax table
// without a rebuild.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}
	var rules Rules
	if err := json.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("tax rules file %s: %w", path, err)
	}
	if len(rules.Brackets) == 0 {
		return Rules{}, fmt.Errorf("tax rules file %s: no brackets", path)
	}
	return rules, nil
}

// IncomeTax computes the IRPS withholding on the base salary alone.
// Allowances and bonuses are outside the statutory base.
func (r Rules) IncomeTax(baseSalary float64) float64 {
	for _, bracket := range r.Brackets {
		if baseSalary < bracket.Min {
			continue
		}
		if bracket.Max != 0 && baseSalary > bracket.Max {
			continue
		}
		tax := decimal.NewFromFloat(baseSalary).Mul(bracket.Rate).Sub(bracket.Deduction)
		if tax.IsNegative() {
			return 0
		}
		return roundAmount(tax)
	}
	return 0
}

// SocialSecurity computes the INPS contribution on the base salary.
// Interns contribute at a reduced rate.
func (r Rules) SocialSecurity(baseSalary float64, employmentType string) float64 {
	rate := r.SocialSecurityRate
	if employmentType == r.InternEmploymentType {
		rate = r.InternSocialSecurityRate
	}
	return roundAmount(decimal.NewFromFloat(baseSalary).Mul(rate))
}

// roundAmount rounds to the whole escudo, half away from zero. Applied
// to every derived statutory figure; sums of whole amounts stay whole.
func roundAmount(amount decimal.Decimal) float64 {
	rounded, _ := amount.Round(0).Float64()
	return rounded
}
