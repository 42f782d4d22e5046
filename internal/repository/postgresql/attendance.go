package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.morning_check_in, a.morning_check_out,
	a.evening_check_in, a.evening_check_out, a.status, a.working_hours,
	a.ip_address, a.created_at, a.updated_at, u.name AS user_name
`

func scanAttendance(row pgx.Row) (attendance.AttendanceDay, error) {
	var day attendance.AttendanceDay
	err := row.Scan(
		&day.ID, &day.UserID, &day.Date, &day.MorningCheckIn, &day.MorningCheckOut,
		&day.EveningCheckIn, &day.EveningCheckOut, &day.Status, &day.WorkingHours,
		&day.IPAddress, &day.CreatedAt, &day.UpdatedAt, &day.UserName,
	)
	return day, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_days (
			user_id, date, morning_check_in, morning_check_out,
			evening_check_in, evening_check_out, status, working_hours, ip_address
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.UserID,
		day.Date,
		day.MorningCheckIn,
		day.MorningCheckOut,
		day.EveningCheckIn,
		day.EveningCheckOut,
		day.Status,
		day.WorkingHours,
		day.IPAddress,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The (user_id, date) unique constraint is the backstop
			// against two concurrent first check-ins.
			return attendance.AttendanceDay{}, attendance.ErrDayAlreadyExists
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	day, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return day, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.date = $2::date
		LIMIT 1
	`

	day, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this user-day yet
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &day, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, day attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_days
		SET morning_check_in = $2,
			morning_check_out = $3,
			evening_check_in = $4,
			evening_check_out = $5,
			status = $6,
			working_hours = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		day.ID,
		day.MorningCheckIn,
		day.MorningCheckOut,
		day.EveningCheckIn,
		day.EveningCheckOut,
		day.Status,
		day.WorkingHours,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func buildAttendanceWhere(filter attendance.AttendanceFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		conditions = append(conditions, "a.user_id = "+addArg(*filter.UserID))
	}
	if filter.Date != nil {
		conditions = append(conditions, "a.date = "+addArg(*filter.Date)+"::date")
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "a.date >= "+addArg(*filter.StartDate)+"::date")
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "a.date <= "+addArg(*filter.EndDate)+"::date")
	}
	if filter.Status != nil {
		conditions = append(conditions, "a.status = "+addArg(*filter.Status))
	}

	return strings.Join(conditions, " AND "), args
}

func attendanceOrderBy(sortBy, sortOrder string) string {
	column := map[string]string{
		"date":      "a.date",
		"status":    "a.status",
		"user_name": "u.name",
	}[sortBy]
	if column == "" {
		column = "a.date"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildAttendanceWhere(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_days a
		JOIN users u ON u.id = a.user_id
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance days: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		JOIN users u ON u.id = a.user_id
		WHERE ` + where + `
		ORDER BY ` + attendanceOrderBy(filter.SortBy, filter.SortOrder) + `
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		day, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance days: %w", err)
	}

	return days, total, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	full := attendance.AttendanceFilter{
		UserID:    &userID,
		Date:      filter.Date,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Status:    filter.Status,
		Page:      filter.Page,
		Limit:     filter.Limit,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	return a.List(ctx, full)
}

// ListStaleWorkingHours implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListStaleWorkingHours(ctx context.Context, limit int) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		JOIN users u ON u.id = a.user_id
		WHERE (a.morning_check_out IS NOT NULL OR a.evening_check_out IS NOT NULL)
		  AND (a.working_hours IS NULL OR a.working_hours = '')
		ORDER BY a.date
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		day, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stale attendance days: %w", err)
	}

	return days, nil
}
