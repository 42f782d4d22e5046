package attendance

import (
	"context"
)

// AttendanceService drives the per-day check-in state machine and the
// read paths over day records. The four transition methods enforce, in
// order: caller IP authorization, prerequisite-step presence
// (SequenceError), and target-field absence (AlreadyDoneError).
type AttendanceService interface {
	CheckInMorning(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	CheckOutMorning(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	CheckInEvening(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	CheckOutEvening(ctx context.Context, req CheckRequest) (AttendanceResponse, error)

	// GetToday returns the caller's record for the current date, if any,
	// plus the machine state and the next enabled action.
	GetToday(ctx context.Context) (TodayResponse, error)

	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance is the admin correction path.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// RepairWorkingHours recomputes and persists the cached
	// working-hours string for stale records. Returns how many were
	// fixed. Run by the scheduler; the list paths do the same lazily.
	RepairWorkingHours(ctx context.Context) (int, error)
}
