package driven

import (
	"context"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// EmployeeStore handles employee persistence (PostgreSQL)
type EmployeeStore interface {
	// Create inserts an employee and assigns its ID
	Create(ctx context.Context, employee *domain.Employee) error

	// Get retrieves an employee by ID
	Get(ctx context.Context, id int64) (*domain.Employee, error)

	// List retrieves all employees ordered by ID
	List(ctx context.Context) ([]*domain.Employee, error)

	// Update overwrites an existing employee
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete removes an employee
	Delete(ctx context.Context, id int64) error
}

// DepartmentStore handles department persistence (PostgreSQL)
type DepartmentStore interface {
	// Create inserts a department and assigns its ID
	Create(ctx context.Context, department *domain.Department) error

	// Get retrieves a department by ID
	Get(ctx context.Context, id int64) (*domain.Department, error)

	// List retrieves all departments ordered by ID
	List(ctx context.Context) ([]*domain.Department, error)

	// Update overwrites an existing department
	Update(ctx context.Context, department *domain.Department) error

	// Delete removes a department; its employees keep a nil DepartmentID
	Delete(ctx context.Context, id int64) error
}
