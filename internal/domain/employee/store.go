package employee

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id,
    COALESCE(employee_number, ''),
    name, email,
    COALESCE(position, ''),
    COALESCE(department, ''),
    COALESCE(tax_id, ''),
    employment_type,
    salary,
    food_allowance, communication_allowance, attendance_bonus, assiduity_bonus,
    join_date, termination_date,
    status,
    COALESCE(archive_reason, ''),
    COALESCE(work_location, ''),
    COALESCE(bank_name, ''),
    COALESCE(bank_account, ''),
    COALESCE(address, ''),
    COALESCE(country, ''),
    created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.Name, &emp.Email, &emp.Position, &emp.Department,
		&emp.TaxID, &emp.EmploymentType, &emp.Salary,
		&emp.FoodAllowance, &emp.CommunicationAllowance, &emp.AttendanceBonus, &emp.AssiduityBonus,
		&emp.JoinDate, &emp.TerminationDate, &emp.Status, &emp.ArchiveReason,
		&emp.WorkLocation, &emp.BankName, &emp.BankAccount, &emp.Address, &emp.Country,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) List(ctx context.Context, status string) ([]Employee, error) {
	query := "SELECT" + employeeColumns + " FROM employees"
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE id = $1", employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, name, email, position, department, tax_id,
      employment_type, salary, food_allowance, communication_allowance, attendance_bonus,
      assiduity_bonus, join_date, work_location, bank_name, bank_account, address, country, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
    RETURNING id
  `,
		nullIfEmpty(emp.EmployeeNumber), emp.Name, emp.Email, emp.Position, emp.Department, emp.TaxID,
		emp.EmploymentType, emp.Salary, emp.FoodAllowance, emp.CommunicationAllowance,
		emp.AttendanceBonus, emp.AssiduityBonus, emp.JoinDate,
		emp.WorkLocation, emp.BankName, emp.BankAccount, emp.Address, emp.Country, emp.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update never touches status, archive_reason or termination_date;
// those move only through Archive.
func (s *Store) Update(ctx context.Context, employeeID string, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1,
        name = $2,
        email = $3,
        position = $4,
        department = $5,
        tax_id = $6,
        employment_type = $7,
        salary = $8,
        food_allowance = $9,
        communication_allowance = $10,
        attendance_bonus = $11,
        assiduity_bonus = $12,
        join_date = $13,
        work_location = $14,
        bank_name = $15,
        bank_account = $16,
        address = $17,
        country = $18,
        updated_at = now()
    WHERE id = $19
  `,
		nullIfEmpty(emp.EmployeeNumber), emp.Name, emp.Email, emp.Position, emp.Department, emp.TaxID,
		emp.EmploymentType, emp.Salary, emp.FoodAllowance, emp.CommunicationAllowance,
		emp.AttendanceBonus, emp.AssiduityBonus, emp.JoinDate,
		emp.WorkLocation, emp.BankName, emp.BankAccount, emp.Address, emp.Country, employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Archive(ctx context.Context, employeeID, reason string, terminationDate time.Time) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET status = $1, archive_reason = $2, termination_date = $3, updated_at = now()
    WHERE id = $4 AND status = $5
  `, StatusArchived, reason, terminationDate, employeeID, StatusActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var count int
		if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotActive
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
