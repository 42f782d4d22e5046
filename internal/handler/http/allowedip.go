package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AllowedIPHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
}

type AllowedIPHandlerImpl struct {
	allowedIPService allowedip.AllowedIPService
}

func NewAllowedIPHandler(allowedIPService allowedip.AllowedIPService) AllowedIPHandler {
	return &AllowedIPHandlerImpl{allowedIPService: allowedIPService}
}

// List implements AllowedIPHandler.
func (a *AllowedIPHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ips, err := a.allowedIPService.List(r.Context())
	if err != nil {
		slog.Error("List allowed IPs service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, ips)
}

// Add implements AllowedIPHandler.
func (a *AllowedIPHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var addReq allowedip.AddAllowedIPRequest

	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		slog.Error("Add allowed IP decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := a.allowedIPService.Add(r.Context(), addReq)
	if err != nil {
		slog.Error("Add allowed IP service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Allowed IP added", "address", created.Address)
	response.Created(w, "Allowed IP added", created)
}

// Delete implements AllowedIPHandler.
func (a *AllowedIPHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.allowedIPService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete allowed IP service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Allowed IP removed", nil)
}

// Check implements AllowedIPHandler. The dashboard probes this on mount
// to warn the user before they try to check in from the wrong network.
func (a *AllowedIPHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	address := callerIP(r)

	allowed, err := a.allowedIPService.Authorize(r.Context(), address)
	if err != nil {
		slog.Error("IP check service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, allowedip.CheckResponse{Address: address, Allowed: allowed})
}
