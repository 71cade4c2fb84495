package postgres

import (
	"context"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DepartmentStore = (*DepartmentStore)(nil)

// DepartmentStore implements driven.DepartmentStore using PostgreSQL
type DepartmentStore struct {
	db *DB
}

// NewDepartmentStore creates a new DepartmentStore
func NewDepartmentStore(db *DB) *DepartmentStore {
	return &DepartmentStore{db: db}
}

// Create inserts a department and assigns its ID
func (s *DepartmentStore) Create(ctx context.Context, department *domain.Department) error {
	query := `INSERT INTO departments (name) VALUES ($1) RETURNING id`
	return mapError(s.db.QueryRowContext(ctx, query, department.Name).Scan(&department.ID))
}

// Get retrieves a department by ID
func (s *DepartmentStore) Get(ctx context.Context, id int64) (*domain.Department, error) {
	query := `SELECT id, name FROM departments WHERE id = $1`

	var department domain.Department
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&department.ID, &department.Name); err != nil {
		return nil, mapError(err)
	}
	return &department, nil
}

// List retrieves all departments ordered by ID
func (s *DepartmentStore) List(ctx context.Context) ([]*domain.Department, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		var department domain.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// Update overwrites an existing department
func (s *DepartmentStore) Update(ctx context.Context, department *domain.Department) error {
	result, err := s.db.ExecContext(ctx, `UPDATE departments SET name = $1 WHERE id = $2`, department.Name, department.ID)
	if err != nil {
		return mapError(err)
	}
	return expectOneRow(result)
}

// Delete removes a department. Employees are detached by ON DELETE SET NULL.
func (s *DepartmentStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
