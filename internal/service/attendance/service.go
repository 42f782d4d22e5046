package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/sse"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	allowedIPService allowedip.AllowedIPService
	hub              *sse.Hub

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	allowedIPService allowedip.AllowedIPService,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		allowedIPService:     allowedIPService,
		hub:                  hub,
		now:                  time.Now,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func toResponse(day attendance.AttendanceDay) attendance.AttendanceResponse {
	sessions := attendance.ComputeSessions(day)

	resp := attendance.AttendanceResponse{
		ID:              day.ID,
		UserID:          day.UserID,
		Date:            day.Date.Format("2006-01-02"),
		MorningCheckIn:  day.MorningCheckIn,
		MorningCheckOut: day.MorningCheckOut,
		EveningCheckIn:  day.EveningCheckIn,
		EveningCheckOut: day.EveningCheckOut,
		Status:          day.Status,
		WorkingHours:    day.WorkingHours,
		IPAddress:       day.IPAddress,
		Sessions: attendance.SessionBundleResponse{
			Morning:      sessions.Morning.Readable,
			Evening:      sessions.Evening.Readable,
			Lunch:        sessions.Lunch.Readable,
			Total:        sessions.Total.Readable,
			TotalSeconds: sessions.Total.Seconds,
			Status:       sessions.Status,
		},
	}
	if day.UserName != nil {
		resp.UserName = *day.UserName
	}
	if !day.CreatedAt.IsZero() {
		resp.CreatedAt = day.CreatedAt.Format(time.RFC3339)
	}
	if !day.UpdatedAt.IsZero() {
		resp.UpdatedAt = day.UpdatedAt.Format(time.RFC3339)
	}

	return resp
}

// authorizeCaller rejects transitions from addresses outside the office
// allowlist. Refusal happens before any record is read or written.
func (a *AttendanceServiceImpl) authorizeCaller(ctx context.Context, address string) error {
	allowed, err := a.allowedIPService.Authorize(ctx, validator.NormalizeIPAddress(address))
	if err != nil {
		return fmt.Errorf("failed to authorize caller address: %w", err)
	}
	if !allowed {
		return attendance.ErrUnauthorizedAddress
	}
	return nil
}

// transition runs one step of the per-day state machine. Guard order is
// fixed: caller authorization, then prerequisite presence, then
// target-field absence. Only the target field (plus the cached
// WorkingHours and Status on checkouts) is ever written.
func (a *AttendanceServiceImpl) transition(ctx context.Context, req attendance.CheckRequest, step string) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.authorizeCaller(ctx, req.IPAddress); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	today := now.Format("2006-01-02")
	clock := now.Format("15:04:05")

	day, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	if step == attendance.StepMorningCheckIn && day == nil {
		created, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceDay{
			UserID:         userID,
			Date:           now,
			MorningCheckIn: &clock,
			Status:         attendance.StatusPresent,
			IPAddress:      validator.NormalizeIPAddress(req.IPAddress),
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		resp := toResponse(created)
		a.publish(resp)
		return resp, nil
	}

	target, missing, isCheckout := stepFields(day, step)
	if missing != nil {
		return attendance.AttendanceResponse{}, missing
	}
	if *target != nil {
		return attendance.AttendanceResponse{}, &attendance.AlreadyDoneError{Step: step, RecordedAt: **target}
	}

	*target = &clock
	if isCheckout {
		sessions := attendance.ComputeSessions(*day)
		day.WorkingHours = &sessions.Total.Readable
		day.Status = sessions.Status
	}

	if err := a.AttendanceRepository.Update(ctx, *day); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toResponse(*day)
	a.publish(resp)
	return resp, nil
}

// stepFields resolves a step name to the field it writes, or the
// sequence error when its prerequisite has not been recorded yet.
func stepFields(day *attendance.AttendanceDay, step string) (target **string, missing *attendance.SequenceError, isCheckout bool) {
	switch step {
	case attendance.StepMorningCheckIn:
		return &day.MorningCheckIn, nil, false
	case attendance.StepMorningCheckOut:
		if day == nil || day.MorningCheckIn == nil {
			return nil, &attendance.SequenceError{Attempted: step, Missing: attendance.StepMorningCheckIn}, true
		}
		return &day.MorningCheckOut, nil, true
	case attendance.StepEveningCheckIn:
		if day == nil || day.MorningCheckOut == nil {
			return nil, &attendance.SequenceError{Attempted: step, Missing: attendance.StepMorningCheckOut}, false
		}
		return &day.EveningCheckIn, nil, false
	default:
		if day == nil || day.EveningCheckIn == nil {
			return nil, &attendance.SequenceError{Attempted: step, Missing: attendance.StepEveningCheckIn}, true
		}
		return &day.EveningCheckOut, nil, true
	}
}

func (a *AttendanceServiceImpl) publish(resp attendance.AttendanceResponse) {
	if a.hub == nil {
		return
	}
	a.hub.Publish("admin", sse.Event{Event: "attendance_update", Data: resp})
}

// CheckInMorning implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckInMorning(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return a.transition(ctx, req, attendance.StepMorningCheckIn)
}

// CheckOutMorning implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOutMorning(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return a.transition(ctx, req, attendance.StepMorningCheckOut)
}

// CheckInEvening implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckInEvening(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return a.transition(ctx, req, attendance.StepEveningCheckIn)
}

// CheckOutEvening implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOutEvening(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	return a.transition(ctx, req, attendance.StepEveningCheckOut)
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := a.now().Format("2006-01-02")
	day, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		State:      attendance.StateOf(day),
		NextAction: attendance.NextAction(day),
	}
	if day != nil {
		record := toResponse(*day)
		resp.Record = &record
	}

	return resp, nil
}

// repairIfStale recomputes the cached working-hours string for a loaded
// record that is missing it. Best effort: a failed write only means the
// next read or the scheduled sweep repairs it instead.
func (a *AttendanceServiceImpl) repairIfStale(ctx context.Context, day *attendance.AttendanceDay) {
	if !attendance.HasStaleWorkingHours(*day) {
		return
	}
	sessions := attendance.ComputeSessions(*day)
	day.WorkingHours = &sessions.Total.Readable
	_ = a.AttendanceRepository.Update(ctx, *day)
}

func (a *AttendanceServiceImpl) toListResponse(ctx context.Context, days []attendance.AttendanceDay, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(days))
	for i := range days {
		a.repairIfStale(ctx, &days[i])
		responses = append(responses, toResponse(days[i]))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	showing := "0 of 0"
	if len(days) > 0 {
		first := (page-1)*limit + 1
		showing = fmt.Sprintf("%d-%d of %d", first, first+len(days)-1, total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.Page, filter.Limit = normalizePaging(filter.Page, filter.Limit)

	days, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.toListResponse(ctx, days, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.Page, filter.Limit = normalizePaging(filter.Page, filter.Limit)

	days, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return a.toListResponse(ctx, days, total, filter.Page, filter.Limit), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// An empty string clears the field; nil leaves it alone.
	applyClock := func(target **string, value *string) {
		if value == nil {
			return
		}
		if *value == "" {
			*target = nil
			return
		}
		*target = value
	}
	applyClock(&day.MorningCheckIn, req.MorningCheckIn)
	applyClock(&day.MorningCheckOut, req.MorningCheckOut)
	applyClock(&day.EveningCheckIn, req.EveningCheckIn)
	applyClock(&day.EveningCheckOut, req.EveningCheckOut)

	sessions := attendance.ComputeSessions(day)
	day.WorkingHours = &sessions.Total.Readable
	if req.Status != nil {
		day.Status = *req.Status
	} else {
		day.Status = sessions.Status
	}

	if err := a.AttendanceRepository.Update(ctx, day); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toResponse(day)
	a.publish(resp)
	return resp, nil
}

// RepairWorkingHours implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RepairWorkingHours(ctx context.Context) (int, error) {
	stale, err := a.AttendanceRepository.ListStaleWorkingHours(ctx, 500)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale records: %w", err)
	}

	repaired := 0
	for i := range stale {
		sessions := attendance.ComputeSessions(stale[i])
		stale[i].WorkingHours = &sessions.Total.Readable
		if err := a.AttendanceRepository.Update(ctx, stale[i]); err != nil {
			return repaired, fmt.Errorf("failed to repair record %s: %w", stale[i].ID, err)
		}
		repaired++
	}

	return repaired, nil
}
