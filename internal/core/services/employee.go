package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driving"
)

// Ensure employeeService implements EmployeeService
var _ driving.EmployeeService = (*employeeService)(nil)

type employeeService struct {
	employees   driven.EmployeeStore
	departments driven.DepartmentStore
	logger      *slog.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employees driven.EmployeeStore,
	departments driven.DepartmentStore,
	logger *slog.Logger,
) driving.EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &employeeService{
		employees:   employees,
		departments: departments,
		logger:      logger.With("component", "employees"),
	}
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.employees.Get(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	employee := &domain.Employee{}
	in.Apply(employee)
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", employee.ID)
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	in.Apply(employee)
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// validate checks the input and that the referenced department exists
func (s *employeeService) validate(ctx context.Context, in domain.EmployeeInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.DepartmentID == nil {
		return nil
	}
	if _, err := s.departments.Get(ctx, *in.DepartmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: department %d does not exist", domain.ErrInvalidInput, *in.DepartmentID)
		}
		return err
	}
	return nil
}
