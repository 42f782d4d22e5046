package attendance

import (
	"context"
)

// AttendanceRepository defines data access for day records. Dates cross
// the boundary as "YYYY-MM-DD" strings so that the (user_id, date)
// natural key compares the same way everywhere.
type AttendanceRepository interface {
	// Create inserts a day record. A duplicate (user_id, date) insert
	// returns ErrDayAlreadyExists; this is the backstop for two
	// concurrent first check-ins.
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// GetByID retrieves a day record by ID.
	GetByID(ctx context.Context, id string) (AttendanceDay, error)

	// GetByUserAndDate retrieves the zero-or-one record for a user-day.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*AttendanceDay, error)

	// Update rewrites an existing record in place.
	Update(ctx context.Context, day AttendanceDay) error

	// List retrieves day records with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceDay, int64, error)

	// ListByUser retrieves one user's day records.
	ListByUser(ctx context.Context, userID string, filter MyAttendanceFilter) ([]AttendanceDay, int64, error)

	// ListStaleWorkingHours finds records with a checkout recorded but
	// no cached working-hours string.
	ListStaleWorkingHours(ctx context.Context, limit int) ([]AttendanceDay, error)
}
