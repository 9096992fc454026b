package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslipPDF renders one frozen line item as a payslip. Only the
// figures stored at run time appear; nothing is recomputed from the
// current rules or profile.
func RenderPayslipPDF(item LineItem, month string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", item.Name))
	pdf.Ln(7)
	if item.EmployeeNumber != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee no: %s", item.EmployeeNumber))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", month))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %.0f CVE", item.BaseSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.0f CVE", item.Allowances))
	pdf.Ln(7)

	if len(item.Adjustments) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Adjustments")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		for _, adj := range item.Adjustments {
			sign := "+"
			if adj.Kind == KindDeduction {
				sign = "-"
			}
			pdf.Cell(0, 8, fmt.Sprintf("%s %s%.0f CVE", adj.Description, sign, adj.Amount))
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.0f CVE", item.TotalDeductions))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.0f CVE", item.Net))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
