package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeviceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DeviceHandlerImpl struct {
	deviceService device.DeviceService
}

func NewDeviceHandler(deviceService device.DeviceService) DeviceHandler {
	return &DeviceHandlerImpl{deviceService: deviceService}
}

// List implements DeviceHandler.
func (d *DeviceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := device.ListDevicesFilter{
		UserID: queryString(r, "user_id"),
		Status: queryString(r, "status"),
	}

	devices, err := d.deviceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List devices service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, devices)
}

// Approve implements DeviceHandler.
func (d *DeviceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	approved, err := d.deviceService.Approve(r.Context(), id)
	if err != nil {
		slog.Error("Approve device service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device approved", "device_id", approved.ID, "user_id", approved.UserID)
	response.SuccessWithMessage(w, "Device approved", approved)
}

// Delete implements DeviceHandler.
func (d *DeviceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := d.deviceService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete device service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device removed", nil)
}
