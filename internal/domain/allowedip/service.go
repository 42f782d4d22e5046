package allowedip

import (
	"context"
)

// AllowedIPService manages the office allowlist and answers the
// authorization question for a caller address. An empty allowlist
// authorizes everyone (fail-open); this is a deliberate configuration
// default, switchable via IP_ALLOWLIST_FAIL_OPEN.
type AllowedIPService interface {
	List(ctx context.Context) ([]AllowedIPResponse, error)
	Add(ctx context.Context, req AddAllowedIPRequest) (AllowedIPResponse, error)
	Delete(ctx context.Context, id string) error

	// Authorize reports whether the given address may perform
	// check-in/out transitions right now. Checked once per attempted
	// transition, never cached across the day.
	Authorize(ctx context.Context, address string) (bool, error)
}
