package report

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepository struct {
	days []attendance.AttendanceDay
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	return day, nil
}

func (f *fakeAttendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceDay, error) {
	return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.AttendanceDay, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, day attendance.AttendanceDay) error {
	return nil
}

func (f *fakeAttendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	start := (filter.Page - 1) * filter.Limit
	if start >= len(f.days) {
		return nil, int64(len(f.days)), nil
	}
	end := start + filter.Limit
	if end > len(f.days) {
		end = len(f.days)
	}
	return f.days[start:end], int64(len(f.days)), nil
}

func (f *fakeAttendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepository) ListStaleWorkingHours(ctx context.Context, limit int) ([]attendance.AttendanceDay, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func TestExportAttendance(t *testing.T) {
	name := "Dina Cahyani"
	repo := &fakeAttendanceRepository{days: []attendance.AttendanceDay{
		{
			UserID:          "user-1",
			UserName:        &name,
			Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			MorningCheckIn:  strPtr("09:00:00"),
			MorningCheckOut: strPtr("13:00:00"),
			EveningCheckIn:  strPtr("14:00:00"),
			EveningCheckOut: strPtr("18:00:00"),
			Status:          attendance.StatusPresent,
		},
		{
			UserID:         "user-1",
			UserName:       &name,
			Date:           time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			MorningCheckIn: strPtr("09:10:00"),
			Status:         attendance.StatusPartial,
		},
	}}

	svc := NewReportService(nil, repo)
	file, err := svc.ExportAttendance(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)

	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	header, err := file.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	date, err := file.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", date)

	total, err := file.GetCellValue(sheet, "J2")
	require.NoError(t, err)
	assert.Equal(t, "08:00", total)

	// Open-ended day shows placeholders, never zeros.
	morningOut, err := file.GetCellValue(sheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "--", morningOut)

	status, err := file.GetCellValue(sheet, "K3")
	require.NoError(t, err)
	assert.Equal(t, "partial", status)
}

func TestExportRejectsBadFilter(t *testing.T) {
	svc := NewReportService(nil, &fakeAttendanceRepository{})

	bad := "not-a-date"
	_, err := svc.ExportAttendance(context.Background(), attendance.AttendanceFilter{StartDate: &bad})
	assert.Error(t, err)
}
