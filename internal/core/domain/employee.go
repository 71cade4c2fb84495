package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Employee is an HR record. DepartmentID is optional.
type Employee struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	Address      string     `json:"address"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	Position     string     `json:"position"`
	Salary       *float64   `json:"salary,omitempty"`
	Username     string     `json:"username"`
	DepartmentID *int64     `json:"department_id,omitempty"`
}

// EmployeeInput is the writable part of an Employee
type EmployeeInput struct {
	Name         string     `json:"name" example:"John"`
	LastName     string     `json:"last_name" example:"Doe"`
	Email        string     `json:"email" example:"john.doe@example.com"`
	PhoneNumber  string     `json:"phone_number"`
	Address      string     `json:"address"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	Position     string     `json:"position" example:"Developer"`
	Salary       *float64   `json:"salary,omitempty"`
	Username     string     `json:"username"`
	DepartmentID *int64     `json:"department_id,omitempty"`
}

// Validate checks the employee fields
func (in EmployeeInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: name and last name are required", ErrInvalidInput)
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return fmt.Errorf("%w: malformed email", ErrInvalidInput)
		}
	}
	if in.Salary != nil && *in.Salary < 0 {
		return fmt.Errorf("%w: salary must not be negative", ErrInvalidInput)
	}
	return nil
}

// Apply copies the input onto e, keeping its ID
func (in EmployeeInput) Apply(e *Employee) {
	e.Name = in.Name
	e.LastName = in.LastName
	e.Email = in.Email
	e.PhoneNumber = in.PhoneNumber
	e.Address = in.Address
	e.DateOfBirth = in.DateOfBirth
	e.HireDate = in.HireDate
	e.Position = in.Position
	e.Salary = in.Salary
	e.Username = in.Username
	e.DepartmentID = in.DepartmentID
}
