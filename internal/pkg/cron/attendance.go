package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs repairs day records whose cached working-hours string
// fell behind the recorded checkouts. The list endpoints do the same
// repair lazily; this job sweeps records nobody has loaded.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

// Register wires the attendance jobs into the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("repair_working_hours", interval, j.repairWorkingHours)
}

func (j *AttendanceJobs) repairWorkingHours(ctx context.Context) error {
	fixed, err := j.attendanceService.RepairWorkingHours(ctx)
	if err != nil {
		return err
	}
	if fixed > 0 {
		slog.Info("Repaired stale working hours", "records", fixed)
	}
	return nil
}
