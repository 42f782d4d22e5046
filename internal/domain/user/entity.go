package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages employees, allowed IPs and devices
	RoleEmployee Role = "employee" // Checks in and out
)

// User is one dashboard account. Employees are users with RoleEmployee;
// there is no separate HR entity in this product.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
