package employee

import (
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE MANAGEMENT DTOs
// ========================================

type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

var roles = []string{string(user.RoleEmployee), string(user.RoleAdmin)}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !validator.IsInSlice(r.Role, roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be employee or admin"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be valid"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be employee or admin"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeesFilter struct {
	Search   *string `json:"search"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *ListEmployeesFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && !validator.IsInSlice(*f.Role, roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be employee or admin"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
