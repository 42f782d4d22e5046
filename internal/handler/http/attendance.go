package http

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckInMorning(w http.ResponseWriter, r *http.Request)
	CheckOutMorning(w http.ResponseWriter, r *http.Request)
	CheckInEvening(w http.ResponseWriter, r *http.Request)
	CheckOutEvening(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// callerIP extracts the host part of the request's remote address. With
// the RealIP middleware in front this is the end-client address, not
// the proxy's.
func callerIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func checkRequestFrom(r *http.Request) attendance.CheckRequest {
	return attendance.CheckRequest{
		IPAddress: callerIP(r),
		UserAgent: r.UserAgent(),
	}
}

func (a *AttendanceHandlerImpl) respondTransition(w http.ResponseWriter, step string, resp attendance.AttendanceResponse, err error) {
	if err != nil {
		slog.Error("Attendance transition refused", "step", step, "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("Attendance recorded", "step", step, "user_id", resp.UserID)
	response.SuccessWithMessage(w, step+" recorded", resp)
}

// CheckInMorning implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckInMorning(w http.ResponseWriter, r *http.Request) {
	resp, err := a.attendanceService.CheckInMorning(r.Context(), checkRequestFrom(r))
	a.respondTransition(w, attendance.StepMorningCheckIn, resp, err)
}

// CheckOutMorning implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOutMorning(w http.ResponseWriter, r *http.Request) {
	resp, err := a.attendanceService.CheckOutMorning(r.Context(), checkRequestFrom(r))
	a.respondTransition(w, attendance.StepMorningCheckOut, resp, err)
}

// CheckInEvening implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckInEvening(w http.ResponseWriter, r *http.Request) {
	resp, err := a.attendanceService.CheckInEvening(r.Context(), checkRequestFrom(r))
	a.respondTransition(w, attendance.StepEveningCheckIn, resp, err)
}

// CheckOutEvening implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOutEvening(w http.ResponseWriter, r *http.Request) {
	resp, err := a.attendanceService.CheckOutEvening(r.Context(), checkRequestFrom(r))
	a.respondTransition(w, attendance.StepEveningCheckOut, resp, err)
}

// GetToday implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	today, err := a.attendanceService.GetToday(r.Context())
	if err != nil {
		slog.Error("GetToday service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, today)
}

func queryString(r *http.Request, key string) *string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}

// GetMyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MyAttendanceFilter{
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	list, err := a.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// ListAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		UserID:    queryString(r, "user_id"),
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	list, err := a.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// UpdateAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var updateReq attendance.UpdateAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := a.attendanceService.UpdateAttendance(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", updated)
}
