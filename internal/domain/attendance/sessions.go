package attendance

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/worktime"
)

// Sessions is the displayable per-day breakdown: the two work sessions,
// the lunch gap between them, the worked total (lunch excluded) and the
// derived status.
type Sessions struct {
	Morning worktime.Duration
	Evening worktime.Duration
	Lunch   worktime.Duration
	Total   worktime.Duration
	Status  string
}

// ComputeSessions derives the session breakdown for a day record.
func ComputeSessions(day AttendanceDay) Sessions {
	morning := worktime.SessionDuration(day.MorningCheckIn, day.MorningCheckOut)
	evening := worktime.SessionDuration(day.EveningCheckIn, day.EveningCheckOut)
	lunch := worktime.SessionDuration(day.MorningCheckOut, day.EveningCheckIn)

	totalSeconds := morning.Seconds + evening.Seconds

	return Sessions{
		Morning: morning,
		Evening: evening,
		Lunch:   lunch,
		Total: worktime.Duration{
			Seconds:  totalSeconds,
			Readable: worktime.FormatDuration(totalSeconds),
		},
		Status: DeriveStatus(day),
	}
}

// DeriveStatus classifies a day record by which time fields exist:
// all four present, some check-in but not the full set, or nothing.
// It never produces "half-day"; that value is an administrative override.
func DeriveStatus(day AttendanceDay) string {
	allSet := day.MorningCheckIn != nil && day.MorningCheckOut != nil &&
		day.EveningCheckIn != nil && day.EveningCheckOut != nil
	if allSet {
		return StatusPresent
	}
	if day.MorningCheckIn != nil || day.EveningCheckIn != nil {
		return StatusPartial
	}
	return StatusAbsent
}

// HasStaleWorkingHours reports whether a checkout was recorded but the
// cached WorkingHours string is missing. Such records are repaired by
// recomputation the next time they are loaded, and by the nightly job.
func HasStaleWorkingHours(day AttendanceDay) bool {
	hasCheckout := day.MorningCheckOut != nil || day.EveningCheckOut != nil
	return hasCheckout && (day.WorkingHours == nil || *day.WorkingHours == "")
}
