package allowedip

import "time"

// AllowedIP is one authorized office address. Membership of the caller's
// address in this set gates every check-in/out transition.
type AllowedIP struct {
	ID          string
	Address     string
	Description string
	CreatedAt   time.Time
}
