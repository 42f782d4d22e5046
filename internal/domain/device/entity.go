package device

import "time"

// Fingerprint status flags. An unrecognized device is queued as pending
// rather than rejected outright; only an admin moves it to approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// DeviceFingerprint ties a browser fingerprint to an account. Employee
// logins are gated on an approved fingerprint; admins bypass the gate.
type DeviceFingerprint struct {
	ID          string
	UserID      string
	Fingerprint string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / join
	UserName *string
}
