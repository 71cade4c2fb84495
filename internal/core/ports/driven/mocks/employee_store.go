package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

var (
	_ driven.EmployeeStore   = (*MockEmployeeStore)(nil)
	_ driven.DepartmentStore = (*MockDepartmentStore)(nil)
)

// MockEmployeeStore is an in-memory EmployeeStore for testing
type MockEmployeeStore struct {
	mu        sync.RWMutex
	nextID    int64
	employees map[int64]*domain.Employee
}

// NewMockEmployeeStore creates a new MockEmployeeStore
func NewMockEmployeeStore() *MockEmployeeStore {
	return &MockEmployeeStore{
		nextID:    1,
		employees: make(map[int64]*domain.Employee),
	}
}

func (m *MockEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	employee.ID = m.nextID
	m.nextID++
	c := *employee
	m.employees[employee.ID] = &c
	return nil
}

func (m *MockEmployeeStore) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (m *MockEmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		c := *e
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[employee.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *employee
	m.employees[employee.ID] = &c
	return nil
}

func (m *MockEmployeeStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

// DetachDepartment mirrors ON DELETE SET NULL
func (m *MockEmployeeStore) DetachDepartment(departmentID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			e.DepartmentID = nil
		}
	}
}

// MockDepartmentStore is an in-memory DepartmentStore for testing
type MockDepartmentStore struct {
	mu          sync.RWMutex
	nextID      int64
	departments map[int64]*domain.Department

	// OnDelete runs after a successful delete
	OnDelete func(id int64)
}

// NewMockDepartmentStore creates a new MockDepartmentStore
func NewMockDepartmentStore() *MockDepartmentStore {
	return &MockDepartmentStore{
		nextID:      1,
		departments: make(map[int64]*domain.Department),
	}
}

func (m *MockDepartmentStore) Create(ctx context.Context, department *domain.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	department.ID = m.nextID
	m.nextID++
	c := *department
	m.departments[department.ID] = &c
	return nil
}

func (m *MockDepartmentStore) Get(ctx context.Context, id int64) (*domain.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.departments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (m *MockDepartmentStore) List(ctx context.Context) ([]*domain.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Department, 0, len(m.departments))
	for _, d := range m.departments {
		c := *d
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockDepartmentStore) Update(ctx context.Context, department *domain.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.departments[department.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *department
	m.departments[department.ID] = &c
	return nil
}

func (m *MockDepartmentStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	if _, ok := m.departments[id]; !ok {
		m.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(m.departments, id)
	m.mu.Unlock()

	if m.OnDelete != nil {
		m.OnDelete(id)
	}
	return nil
}
