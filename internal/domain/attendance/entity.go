package attendance

import (
	"time"
)

// Attendance status values. "present", "partial" and "absent" are derived
// from which time fields exist on the record; "half-day" is only ever
// assigned by an administrator through the update endpoint.
const (
	StatusPresent = "present"
	StatusPartial = "partial"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
)

// State of a user-day in the check-in sequence.
type State string

const (
	StateNotStarted    State = "not_started"
	StateMorningActive State = "morning_active"
	StateMorningDone   State = "morning_done"
	StateEveningActive State = "evening_active"
	StateDayComplete   State = "day_complete"
)

// AttendanceDay is the single attendance record for one user on one
// calendar date. Time fields are wall-clock time-of-day strings
// ("09:00:00"); once set they are never cleared by the check-in flow.
type AttendanceDay struct {
	ID              string
	UserID          string
	Date            time.Time
	MorningCheckIn  *string
	MorningCheckOut *string
	EveningCheckIn  *string
	EveningCheckOut *string
	Status          string
	WorkingHours    *string
	IPAddress       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / join
	UserName *string
}

// StateOf reports where a day record sits in the strict
// morning-before-evening sequence. A nil record is a day that has not
// started.
func StateOf(day *AttendanceDay) State {
	switch {
	case day == nil || day.MorningCheckIn == nil:
		return StateNotStarted
	case day.MorningCheckOut == nil:
		return StateMorningActive
	case day.EveningCheckIn == nil:
		return StateMorningDone
	case day.EveningCheckOut == nil:
		return StateEveningActive
	default:
		return StateDayComplete
	}
}

// NextAction names the one transition the state machine will accept next,
// or "none" for a completed day. The dashboard uses this to decide which
// control to enable.
func NextAction(day *AttendanceDay) string {
	switch StateOf(day) {
	case StateNotStarted:
		return "morning_check_in"
	case StateMorningActive:
		return "morning_check_out"
	case StateMorningDone:
		return "evening_check_in"
	case StateEveningActive:
		return "evening_check_out"
	default:
		return "none"
	}
}
