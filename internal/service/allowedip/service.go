package allowedip

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type AllowedIPServiceImpl struct {
	db *database.DB
	allowedip.AllowedIPRepository

	// failOpen controls what an empty allowlist means: true authorizes
	// everyone until the first address is added.
	failOpen bool
}

func NewAllowedIPService(db *database.DB, repo allowedip.AllowedIPRepository, failOpen bool) allowedip.AllowedIPService {
	return &AllowedIPServiceImpl{db: db, AllowedIPRepository: repo, failOpen: failOpen}
}

func toResponse(ip allowedip.AllowedIP) allowedip.AllowedIPResponse {
	return allowedip.AllowedIPResponse{
		ID:          ip.ID,
		Address:     ip.Address,
		Description: ip.Description,
		CreatedAt:   ip.CreatedAt.Format(time.RFC3339),
	}
}

// List implements allowedip.AllowedIPService.
func (a *AllowedIPServiceImpl) List(ctx context.Context) ([]allowedip.AllowedIPResponse, error) {
	ips, err := a.AllowedIPRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowed ips: %w", err)
	}

	responses := make([]allowedip.AllowedIPResponse, 0, len(ips))
	for _, ip := range ips {
		responses = append(responses, toResponse(ip))
	}
	return responses, nil
}

// Add implements allowedip.AllowedIPService.
func (a *AllowedIPServiceImpl) Add(ctx context.Context, req allowedip.AddAllowedIPRequest) (allowedip.AllowedIPResponse, error) {
	if err := req.Validate(); err != nil {
		return allowedip.AllowedIPResponse{}, err
	}

	created, err := a.AllowedIPRepository.Create(ctx, allowedip.AllowedIP{
		Address:     validator.NormalizeIPAddress(req.Address),
		Description: req.Description,
	})
	if err != nil {
		return allowedip.AllowedIPResponse{}, err
	}

	return toResponse(created), nil
}

// Delete implements allowedip.AllowedIPService.
func (a *AllowedIPServiceImpl) Delete(ctx context.Context, id string) error {
	return a.AllowedIPRepository.Delete(ctx, id)
}

// Authorize implements allowedip.AllowedIPService. The allowlist is read
// fresh on every call so an admin change applies to the next attempt.
func (a *AllowedIPServiceImpl) Authorize(ctx context.Context, address string) (bool, error) {
	ips, err := a.AllowedIPRepository.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load allowlist: %w", err)
	}

	if len(ips) == 0 {
		return a.failOpen, nil
	}

	caller := validator.NormalizeIPAddress(address)
	for _, ip := range ips {
		if validator.NormalizeIPAddress(ip.Address) == caller {
			return true, nil
		}
	}
	return false, nil
}
