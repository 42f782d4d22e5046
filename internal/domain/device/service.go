package device

import (
	"context"
)

// DeviceService is the admin review surface for queued fingerprints.
type DeviceService interface {
	List(ctx context.Context, filter ListDevicesFilter) ([]DeviceResponse, error)
	Approve(ctx context.Context, id string) (DeviceResponse, error)
	Delete(ctx context.Context, id string) error
}
