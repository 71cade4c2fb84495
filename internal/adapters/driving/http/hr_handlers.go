package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
)

// pathID parses the {id} path value. Returns false after writing a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps CRUD service errors to status codes
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		s.logger.Error("request failed", "request_id", GetRequestID(r.Context()), "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Department endpoints

// handleListDepartments godoc
// @Summary      List departments
// @Tags         Departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Department
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /departments [get]
func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.departmentService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

// handleGetDepartment godoc
// @Summary      Get department
// @Tags         Departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Department ID"
// @Success      200  {object}  domain.Department
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /departments/{id} [get]
func (s *Server) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	department, err := s.departmentService.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

// handleCreateDepartment godoc
// @Summary      Create department
// @Tags         Departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.DepartmentInput  true  "Department"
// @Success      201      {object}  domain.Department
// @Failure      400      {object}  ErrorResponse  "Validation failed"
// @Failure      403      {object}  ErrorResponse  "Insufficient permissions"
// @Router       /departments [post]
func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var in domain.DepartmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	department, err := s.departmentService.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, department)
}

// handleUpdateDepartment godoc
// @Summary      Update department
// @Tags         Departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                     true  "Department ID"
// @Param        request  body      domain.DepartmentInput  true  "Department"
// @Success      200      {object}  domain.Department
// @Failure      400      {object}  ErrorResponse  "Validation failed"
// @Failure      404      {object}  ErrorResponse  "Not found"
// @Router       /departments/{id} [put]
func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.DepartmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	department, err := s.departmentService.Update(r.Context(), id, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

// handleDeleteDepartment godoc
// @Summary      Delete department
// @Description  Employees of the department stay, without a department
// @Tags         Departments
// @Security     BearerAuth
// @Param        id   path  int  true  "Department ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /departments/{id} [delete]
func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.departmentService.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Employee endpoints

// handleListEmployees godoc
// @Summary      List employees
// @Tags         Employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Employee
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /employees [get]
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employeeService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// handleGetEmployee godoc
// @Summary      Get employee
// @Tags         Employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /employees/{id} [get]
func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	employee, err := s.employeeService.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// handleCreateEmployee godoc
// @Summary      Create employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.EmployeeInput  true  "Employee"
// @Success      201      {object}  domain.Employee
// @Failure      400      {object}  ErrorResponse  "Validation failed"
// @Failure      403      {object}  ErrorResponse  "Insufficient permissions"
// @Router       /employees [post]
func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	employee, err := s.employeeService.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// handleUpdateEmployee godoc
// @Summary      Update employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                   true  "Employee ID"
// @Param        request  body      domain.EmployeeInput  true  "Employee"
// @Success      200      {object}  domain.Employee
// @Failure      400      {object}  ErrorResponse  "Validation failed"
// @Failure      404      {object}  ErrorResponse  "Not found"
// @Router       /employees/{id} [put]
func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	employee, err := s.employeeService.Update(r.Context(), id, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// handleDeleteEmployee godoc
// @Summary      Delete employee
// @Tags         Employees
// @Security     BearerAuth
// @Param        id   path  int  true  "Employee ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse  "Not found"
// @Router       /employees/{id} [delete]
func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.employeeService.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
