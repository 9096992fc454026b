package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"folha/internal/domain/employee"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListAdjustments(ctx context.Context, employeeID string, includeProcessed bool) ([]Adjustment, error) {
	query := `
    SELECT id, employee_id, kind, amount, description, effective_date,
           COALESCE(pay_period, ''), processed, created_at
    FROM salary_adjustments
    WHERE employee_id = $1`
	if !includeProcessed {
		query += " AND processed = false"
	}
	query += " ORDER BY effective_date, created_at"

	rows, err := s.DB.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAdjustments(rows)
}

func (s *Store) CreateAdjustment(ctx context.Context, adj Adjustment) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_adjustments (employee_id, kind, amount, description, effective_date)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, adj.EmployeeID, adj.Kind, adj.Amount, adj.Description, adj.EffectiveDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteAdjustment only ever removes unprocessed entries; processed
// ones are part of run history and stay put.
func (s *Store) DeleteAdjustment(ctx context.Context, employeeID, adjustmentID string) error {
	cmd, err := s.DB.Exec(ctx, `
    DELETE FROM salary_adjustments
    WHERE id = $1 AND employee_id = $2 AND processed = false
  `, adjustmentID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAdjustmentNotFound
	}
	return nil
}

func (s *Store) RunExists(ctx context.Context, month string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_runs WHERE month = $1", month).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, processed_at, status, total_gross, total_deductions, total_net
    FROM payroll_runs
    ORDER BY month DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Month, &run.ProcessedAt, &run.Status,
			&run.TotalGross, &run.TotalDeductions, &run.TotalNet); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Store) GetRun(ctx context.Context, month string) (*Run, error) {
	var run Run
	err := s.DB.QueryRow(ctx, `
    SELECT id, month, processed_at, status, total_gross, total_deductions, total_net
    FROM payroll_runs
    WHERE month = $1
  `, month).Scan(&run.ID, &run.Month, &run.ProcessedAt, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, employee_number, name, base_salary, allowances, gross, total_deductions, net
    FROM payroll_line_items
    WHERE run_id = $1
    ORDER BY name
  `, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.EmployeeID, &item.EmployeeNumber, &item.Name,
			&item.BaseSalary, &item.Allowances, &item.Gross, &item.TotalDeductions, &item.Net); err != nil {
			return nil, err
		}
		run.Items = append(run.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Adjustments folded into a run carry its month as pay period, so
	// the frozen list is reproducible from the ledger itself.
	folded, err := s.monthAdjustments(ctx, month)
	if err != nil {
		return nil, err
	}
	for i := range run.Items {
		run.Items[i].Adjustments = folded[run.Items[i].EmployeeID]
	}
	return &run, nil
}

func (s *Store) GetLineItem(ctx context.Context, month, employeeID string) (*LineItem, error) {
	var item LineItem
	err := s.DB.QueryRow(ctx, `
    SELECT i.employee_id, i.employee_number, i.name, i.base_salary, i.allowances,
           i.gross, i.total_deductions, i.net
    FROM payroll_line_items i
    JOIN payroll_runs r ON i.run_id = r.id
    WHERE r.month = $1 AND i.employee_id = $2
  `, month, employeeID).Scan(&item.EmployeeID, &item.EmployeeNumber, &item.Name,
		&item.BaseSalary, &item.Allowances, &item.Gross, &item.TotalDeductions, &item.Net)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SnapshotActiveEmployees(ctx context.Context) ([]EmployeeSnapshot, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(employee_number, ''), name, employment_type, salary,
           food_allowance, communication_allowance, attendance_bonus, assiduity_bonus
    FROM employees
    WHERE status = $1
    ORDER BY name
  `, employee.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []EmployeeSnapshot
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.EmployeeNumber, &emp.Name, &emp.EmploymentType, &emp.Salary,
			&emp.FoodAllowance, &emp.CommunicationAllowance, &emp.AttendanceBonus, &emp.AssiduityBonus); err != nil {
			return nil, err
		}
		emp.Status = employee.StatusActive
		snapshots = append(snapshots, EmployeeSnapshot{Employee: emp})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	adjRows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, kind, amount, description, effective_date,
           COALESCE(pay_period, ''), processed, created_at
    FROM salary_adjustments
    WHERE processed = false
    ORDER BY effective_date, created_at
  `)
	if err != nil {
		return nil, err
	}
	defer adjRows.Close()

	adjustments, err := scanAdjustments(adjRows)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string][]Adjustment, len(adjustments))
	for _, adj := range adjustments {
		byEmployee[adj.EmployeeID] = append(byEmployee[adj.EmployeeID], adj)
	}
	for i := range snapshots {
		snapshots[i].Adjustments = byEmployee[snapshots[i].Employee.ID]
	}
	return snapshots, nil
}

// SaveRun is the all-or-nothing step of a payroll run: the run record,
// its line items and the processed flags commit together or not at all.
// The row count on the adjustment update is checked against the
// snapshot so a ledger change mid-run aborts the whole transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, processedIDs []string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO payroll_runs (id, month, processed_at, status, total_gross, total_deductions, total_net)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, run.ID, run.Month, run.ProcessedAt, run.Status,
		run.TotalGross, run.TotalDeductions, run.TotalNet); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrRunExists
		}
		return err
	}

	for _, item := range run.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO payroll_line_items (run_id, employee_id, employee_number, name,
        base_salary, allowances, gross, total_deductions, net)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, run.ID, item.EmployeeID, item.EmployeeNumber, item.Name,
			item.BaseSalary, item.Allowances, item.Gross, item.TotalDeductions, item.Net); err != nil {
			return err
		}
	}

	if len(processedIDs) > 0 {
		cmd, err := tx.Exec(ctx, `
      UPDATE salary_adjustments
      SET processed = true, pay_period = $1
      WHERE id = ANY($2) AND processed = false
    `, run.Month, processedIDs)
		if err != nil {
			return err
		}
		if int(cmd.RowsAffected()) != len(processedIDs) {
			return fmt.Errorf("%w: expected %d, marked %d", ErrSnapshotStale, len(processedIDs), cmd.RowsAffected())
		}
	}

	return tx.Commit(ctx)
}

func scanAdjustments(rows pgx.Rows) ([]Adjustment, error) {
	var out []Adjustment
	for rows.Next() {
		var adj Adjustment
		if err := rows.Scan(&adj.ID, &adj.EmployeeID, &adj.Kind, &adj.Amount, &adj.Description,
			&adj.EffectiveDate, &adj.PayPeriod, &adj.Processed, &adj.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, adj)
	}
	return out, rows.Err()
}

func (s *Store) monthAdjustments(ctx context.Context, month string) (map[string][]Adjustment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, kind, amount, description, effective_date,
           COALESCE(pay_period, ''), processed, created_at
    FROM salary_adjustments
    WHERE processed = true AND pay_period = $1
    ORDER BY effective_date, created_at
  `, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments, err := scanAdjustments(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Adjustment, len(adjustments))
	for _, adj := range adjustments {
		out[adj.EmployeeID] = append(out[adj.EmployeeID], adj)
	}
	return out, nil
}
