package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven/mocks"
)

func newTestEmployeeService() (*mocks.MockEmployeeStore, *mocks.MockDepartmentStore, *employeeService) {
	employees := mocks.NewMockEmployeeStore()
	departments := mocks.NewMockDepartmentStore()
	departments.OnDelete = employees.DetachDepartment
	svc := NewEmployeeService(employees, departments, nil).(*employeeService)
	return employees, departments, svc
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestEmployeeService_CRUD(t *testing.T) {
	_, departments, svc := newTestEmployeeService()
	ctx := context.Background()

	dept := &domain.Department{Name: "Engineering"}
	require.NoError(t, departments.Create(ctx, dept))

	created, err := svc.Create(ctx, domain.EmployeeInput{
		Name:         "John",
		LastName:     "Doe",
		Email:        "john.doe@example.com",
		Position:     "Developer",
		Salary:       float64Ptr(5000),
		DepartmentID: int64Ptr(dept.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, dept.ID, *created.DepartmentID)

	updated, err := svc.Update(ctx, created.ID, domain.EmployeeInput{
		Name:     "John",
		LastName: "Smith",
		Position: "Lead",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Nil(t, updated.DepartmentID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lead", got.Position)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeService_Validation(t *testing.T) {
	_, _, svc := newTestEmployeeService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.EmployeeInput
	}{
		{"missing name", domain.EmployeeInput{LastName: "Doe"}},
		{"missing last name", domain.EmployeeInput{Name: "John"}},
		{"malformed email", domain.EmployeeInput{Name: "John", LastName: "Doe", Email: "nope"}},
		{"negative salary", domain.EmployeeInput{Name: "John", LastName: "Doe", Salary: float64Ptr(-1)}},
		{"unknown department", domain.EmployeeInput{Name: "John", LastName: "Doe", DepartmentID: int64Ptr(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEmployeeService_UnknownEmployee(t *testing.T) {
	_, _, svc := newTestEmployeeService()
	ctx := context.Background()

	_, err := svc.Update(ctx, 7, domain.EmployeeInput{Name: "a", LastName: "b"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 7), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, -1), domain.ErrNotFound)
}

func TestEmployeeService_DepartmentDeleteDetaches(t *testing.T) {
	_, departments, svc := newTestEmployeeService()
	ctx := context.Background()
	deptSvc := NewDepartmentService(departments, nil)

	dept, err := deptSvc.Create(ctx, domain.DepartmentInput{Name: "Sales"})
	require.NoError(t, err)

	emp, err := svc.Create(ctx, domain.EmployeeInput{Name: "Ann", LastName: "Lee", DepartmentID: int64Ptr(dept.ID)})
	require.NoError(t, err)

	require.NoError(t, deptSvc.Delete(ctx, dept.ID))

	got, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DepartmentID)
}
