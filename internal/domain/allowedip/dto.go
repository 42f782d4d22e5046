package allowedip

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type AddAllowedIPRequest struct {
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (r *AddAllowedIPRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidIPAddress(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address must be a valid IPv4 or IPv6 address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AllowedIPResponse struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// CheckResponse is the authorization probe the dashboard calls on mount.
type CheckResponse struct {
	Address string `json:"address"`
	Allowed bool   `json:"allowed"`
}
