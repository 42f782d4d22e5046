package employee

import (
	"context"
)

// EmployeeService is the administrative account surface: the admin
// dashboard's employee CRUD.
type EmployeeService interface {
	List(ctx context.Context, filter ListEmployeesFilter) (ListEmployeesResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}
