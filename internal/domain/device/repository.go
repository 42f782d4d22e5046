package device

import (
	"context"
)

type DeviceRepository interface {
	Create(ctx context.Context, fp DeviceFingerprint) (DeviceFingerprint, error)
	GetByID(ctx context.Context, id string) (DeviceFingerprint, error)
	GetByUserAndFingerprint(ctx context.Context, userID string, fingerprint string) (*DeviceFingerprint, error)
	List(ctx context.Context, filter ListDevicesFilter) ([]DeviceFingerprint, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}
