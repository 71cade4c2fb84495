package postgres

import (
	"context"
	"database/sql"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmployeeStore = (*EmployeeStore)(nil)

const employeeColumns = `id, name, last_name, email, phone_number, address, date_of_birth, hire_date,
	position, salary, username, department_id`

// EmployeeStore implements driven.EmployeeStore using PostgreSQL
type EmployeeStore struct {
	db *DB
}

// NewEmployeeStore creates a new EmployeeStore
func NewEmployeeStore(db *DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// Create inserts an employee and assigns its ID
func (s *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (name, last_name, email, phone_number, address, date_of_birth, hire_date,
			position, salary, username, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		employee.Name,
		employee.LastName,
		employee.Email,
		employee.PhoneNumber,
		employee.Address,
		NullTime(employee.DateOfBirth),
		NullTime(employee.HireDate),
		employee.Position,
		NullFloat64(employee.Salary),
		employee.Username,
		NullInt64(employee.DepartmentID),
	).Scan(&employee.ID)
	return mapError(err)
}

// Get retrieves an employee by ID
func (s *EmployeeStore) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(s.db.QueryRowContext(ctx, query, id))
}

// List retrieves all employees ordered by ID
func (s *EmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update overwrites an existing employee
func (s *EmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	query := `
		UPDATE employees SET
			name = $1, last_name = $2, email = $3, phone_number = $4, address = $5,
			date_of_birth = $6, hire_date = $7, position = $8, salary = $9,
			username = $10, department_id = $11
		WHERE id = $12
	`

	result, err := s.db.ExecContext(ctx, query,
		employee.Name,
		employee.LastName,
		employee.Email,
		employee.PhoneNumber,
		employee.Address,
		NullTime(employee.DateOfBirth),
		NullTime(employee.HireDate),
		employee.Position,
		NullFloat64(employee.Salary),
		employee.Username,
		NullInt64(employee.DepartmentID),
		employee.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectOneRow(result)
}

// Delete removes an employee
func (s *EmployeeStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		employee     domain.Employee
		dateOfBirth  sql.NullTime
		hireDate     sql.NullTime
		salary       sql.NullFloat64
		departmentID sql.NullInt64
	)

	err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.LastName,
		&employee.Email,
		&employee.PhoneNumber,
		&employee.Address,
		&dateOfBirth,
		&hireDate,
		&employee.Position,
		&salary,
		&employee.Username,
		&departmentID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	employee.DateOfBirth = TimePtr(dateOfBirth)
	employee.HireDate = TimePtr(hireDate)
	employee.Salary = Float64Ptr(salary)
	employee.DepartmentID = Int64Ptr(departmentID)
	return &employee, nil
}
