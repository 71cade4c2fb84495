package domain

import (
	"fmt"
	"strings"
)

// Department groups employees
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name" example:"Engineering"`
}

// DepartmentInput is the writable part of a Department
type DepartmentInput struct {
	Name string `json:"name" example:"Engineering"`
}

// Validate checks the department fields
func (in DepartmentInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: department name is required", ErrInvalidInput)
	}
	return nil
}
