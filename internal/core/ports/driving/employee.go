package driving

import (
	"context"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// EmployeeService manages employee records
type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// DepartmentService manages departments
type DepartmentService interface {
	List(ctx context.Context) ([]*domain.Department, error)
	Get(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, in domain.DepartmentInput) (*domain.Department, error)
	Update(ctx context.Context, id int64, in domain.DepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}
