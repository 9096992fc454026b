package payroll

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIncomeTaxBrackets(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		base float64
		want float64
	}{
		{"zero salary", 0, 0},
		{"exempt bracket upper bound", 36606, 0},
		{"second bracket lower bound", 36607, 0},
		{"second bracket", 50000, 1875},
		{"second bracket upper bound", 80000, 6075},
		{"third bracket lower bound", 80001, 6075},
		{"third bracket", 85000, 7125},
		{"third bracket", 100000, 10275},
		{"third bracket upper bound", 150000, 20775},
		{"top bracket lower bound", 150001, 20775},
		{"top bracket", 200000, 33275},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rules.IncomeTax(tc.base); got != tc.want {
				t.Errorf("IncomeTax(%v) = %v, want %v", tc.base, got, tc.want)
			}
		})
	}
}

func TestIncomeTaxNeverNegative(t *testing.T) {
	rules := DefaultRules()

	// 36607 * 0.14 = 5124.98, below the 5125 deduction.
	if got := rules.IncomeTax(36607); got != 0 {
		t.Errorf("IncomeTax(36607) = %v, want 0", got)
	}
}

func TestSocialSecurity(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name           string
		base           float64
		employmentType string
		want           float64
	}{
		{"intern rate", 100000, "Estagiário(a)", 8000},
		{"full time rate", 100000, "Full Time", 8500},
		{"part time rate", 100000, "Part Time", 8500},
		{"contractor rate", 100000, "Contractor", 8500},
		{"rounding half up", 85000, "Full Time", 7225},
		{"zero base", 0, "Full Time", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rules.SocialSecurity(tc.base, tc.employmentType); got != tc.want {
				t.Errorf("SocialSecurity(%v, %q) = %v, want %v", tc.base, tc.employmentType, got, tc.want)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	payload := `{
		"brackets": [
			{"min": 0, "max": 50000, "rate": "0", "deduction": "0"},
			{"min": 50001, "max": 0, "rate": "0.1", "deduction": "5000"}
		],
		"socialSecurityRate": "0.05",
		"internSocialSecurityRate": "0.04",
		"internEmploymentType": "Estagiário(a)"
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if got := rules.IncomeTax(100000); got != 5000 {
		t.Errorf("IncomeTax(100000) with custom rules = %v, want 5000", got)
	}
	if got := rules.SocialSecurity(100000, "Full Time"); got != 5000 {
		t.Errorf("SocialSecurity(100000) with custom rules = %v, want 5000", got)
	}
}

func TestLoadRulesRejectsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	if err := os.WriteFile(path, []byte(`{"brackets": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("LoadRules accepted a rules file with no brackets")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadRules accepted a missing file")
	}
}
