package report

import (
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// ExportFilter reuses the attendance list filter; pagination fields are
// ignored because an export always covers the whole filtered range.
type ExportFilter = attendance.AttendanceFilter
