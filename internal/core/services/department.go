package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driving"
)

// Ensure departmentService implements DepartmentService
var _ driving.DepartmentService = (*departmentService)(nil)

type departmentService struct {
	departments driven.DepartmentStore
	logger      *slog.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departments driven.DepartmentStore, logger *slog.Logger) driving.DepartmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &departmentService{
		departments: departments,
		logger:      logger.With("component", "departments"),
	}
}

func (s *departmentService) List(ctx context.Context) ([]*domain.Department, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.departments.Get(ctx, id)
}

func (s *departmentService) Create(ctx context.Context, in domain.DepartmentInput) (*domain.Department, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	department := &domain.Department{Name: strings.TrimSpace(in.Name)}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", department.ID)
	return department, nil
}

func (s *departmentService) Update(ctx context.Context, id int64, in domain.DepartmentInput) (*domain.Department, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	department, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = strings.TrimSpace(in.Name)

	if err := s.departments.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes the department. Its employees stay, unassigned.
func (s *departmentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("department deleted", "department_id", id)
	return nil
}
