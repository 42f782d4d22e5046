package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceService scripts one response per call so the handler
// and middleware stack can be exercised without a database.
type fakeAttendanceService struct {
	response attendance.AttendanceResponse
	today    attendance.TodayResponse
	list     attendance.ListAttendanceResponse
	err      error

	gotRequest *attendance.CheckRequest
}

func (f *fakeAttendanceService) record(req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	f.gotRequest = &req
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return f.response, nil
}

func (f *fakeAttendanceService) CheckInMorning(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return f.record(req)
}

func (f *fakeAttendanceService) CheckOutMorning(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return f.record(req)
}

func (f *fakeAttendanceService) CheckInEvening(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return f.record(req)
}

func (f *fakeAttendanceService) CheckOutEvening(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return f.record(req)
}

func (f *fakeAttendanceService) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	return f.today, f.err
}

func (f *fakeAttendanceService) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return f.list, f.err
}

func (f *fakeAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return f.list, f.err
}

func (f *fakeAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return f.response, nil
}

func (f *fakeAttendanceService) RepairWorkingHours(ctx context.Context) (int, error) {
	return 0, nil
}

func newTestRouter(t *testing.T, svc attendance.AttendanceService) (jwt.Service, http.Handler) {
	t.Helper()

	jwtService := jwt.NewJWTService("handler-test-secret", "1h", "24h")
	hub := sse.NewHub()

	router := NewRouter(
		RouterConfig{AppName: "attendance-test", AppVersion: "test", Environment: "test", FrontendURL: "http://localhost:3000"},
		jwtService,
		NewAuthHandler(jwtService, nil, nil, "http://localhost:3000"),
		NewAttendanceHandler(svc),
		NewEmployeeHandler(nil),
		NewAllowedIPHandler(nil),
		NewDeviceHandler(nil),
		NewReportHandler(nil),
		NewEventsHandler(jwtService, hub),
	)
	return jwtService, router
}

func accessToken(t *testing.T, jwtService jwt.Service, userID, email, role string) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(userID, email, user.Role(role))
	require.NoError(t, err)
	return token
}

func TestCheckInRequiresAuth(t *testing.T) {
	_, router := newTestRouter(t, &fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/morning/check-in", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckInPassesCallerAddress(t *testing.T) {
	in := "09:00:00"
	svc := &fakeAttendanceService{response: attendance.AttendanceResponse{
		ID:             "day-1",
		UserID:         "user-1",
		Date:           "2026-03-02",
		MorningCheckIn: &in,
		Status:         attendance.StatusPresent,
	}}
	jwtService, router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/morning/check-in", nil)
	req.RemoteAddr = "192.168.1.100:54321"
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "user-1", "dina@example.com", "employee"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, svc.gotRequest)
	assert.Equal(t, "192.168.1.100", svc.gotRequest.IPAddress)

	var body struct {
		Success bool                          `json:"success"`
		Data    attendance.AttendanceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "day-1", body.Data.ID)
}

func TestSequenceErrorMapsToConflict(t *testing.T) {
	svc := &fakeAttendanceService{err: &attendance.SequenceError{
		Attempted: attendance.StepEveningCheckIn,
		Missing:   attendance.StepMorningCheckOut,
	}}
	jwtService, router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/evening/check-in", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "user-1", "dina@example.com", "employee"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), attendance.StepMorningCheckOut)
}

func TestUnauthorizedAddressMapsToForbidden(t *testing.T) {
	svc := &fakeAttendanceService{err: attendance.ErrUnauthorizedAddress}
	jwtService, router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/morning/check-in", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "user-1", "dina@example.com", "employee"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminListRequiresAdminRole(t *testing.T) {
	svc := &fakeAttendanceService{}
	jwtService, router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "user-1", "dina@example.com", "employee"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/attendance/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "admin-1", "admin@example.com", "admin"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
