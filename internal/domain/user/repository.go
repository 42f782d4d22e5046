package user

import (
	"context"
)

// UserRepository defines data access for dashboard accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
}

// ListFilter narrows and pages the account list.
type ListFilter struct {
	Search   *string
	Role     *Role
	IsActive *bool
	Page     int
	Limit    int
}
