package employee

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	user.UserRepository
}

func NewEmployeeService(db *database.DB, userRepository user.UserRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{db: db, UserRepository: userRepository}
}

func toResponse(account user.User) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      string(account.Role),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

func callerID(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListEmployeesFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	var role *user.Role
	if filter.Role != nil {
		r := user.Role(*filter.Role)
		role = &r
	}

	accounts, total, err := e.UserRepository.List(ctx, user.ListFilter{
		Search:   filter.Search,
		Role:     role,
		IsActive: filter.IsActive,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toResponse(account))
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// Create implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := e.UserRepository.Create(ctx, user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

// Update implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	account, err := e.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Role != nil {
		account.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		// Admins cannot lock themselves out.
		if !*req.IsActive && req.ID == callerID(ctx) {
			return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
		}
		account.IsActive = *req.IsActive
	}

	if err := e.UserRepository.Update(ctx, account); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(account), nil
}

// Delete implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if id == callerID(ctx) {
		return employee.ErrCannotDeactivateSelf
	}
	return e.UserRepository.Delete(ctx, id)
}
