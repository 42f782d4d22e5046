package device

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type DeviceServiceImpl struct {
	db *database.DB
	device.DeviceRepository
}

func NewDeviceService(db *database.DB, repo device.DeviceRepository) device.DeviceService {
	return &DeviceServiceImpl{db: db, DeviceRepository: repo}
}

func toResponse(fp device.DeviceFingerprint) device.DeviceResponse {
	resp := device.DeviceResponse{
		ID:          fp.ID,
		UserID:      fp.UserID,
		Fingerprint: fp.Fingerprint,
		Status:      fp.Status,
		CreatedAt:   fp.CreatedAt.Format(time.RFC3339),
	}
	if fp.UserName != nil {
		resp.UserName = *fp.UserName
	}
	return resp
}

// List implements device.DeviceService.
func (d *DeviceServiceImpl) List(ctx context.Context, filter device.ListDevicesFilter) ([]device.DeviceResponse, error) {
	fps, err := d.DeviceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	responses := make([]device.DeviceResponse, 0, len(fps))
	for _, fp := range fps {
		responses = append(responses, toResponse(fp))
	}
	return responses, nil
}

// Approve implements device.DeviceService.
func (d *DeviceServiceImpl) Approve(ctx context.Context, id string) (device.DeviceResponse, error) {
	if err := d.DeviceRepository.UpdateStatus(ctx, id, device.StatusApproved); err != nil {
		return device.DeviceResponse{}, err
	}

	fp, err := d.DeviceRepository.GetByID(ctx, id)
	if err != nil {
		return device.DeviceResponse{}, err
	}
	return toResponse(fp), nil
}

// Delete implements device.DeviceService.
func (d *DeviceServiceImpl) Delete(ctx context.Context, id string) error {
	return d.DeviceRepository.Delete(ctx, id)
}
